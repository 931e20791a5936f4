// @title                       Innovation Showcase API
// @version                     1.0
// @description                 Project submission, moderation and comments.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

func main() {
	Execute()
}
