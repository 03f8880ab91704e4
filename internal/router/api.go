package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/handler"
	"github.com/mvillard/groupomania/internal/middleware"
	"github.com/mvillard/groupomania/internal/storage"
)

// registerAPIRoutes defines the /api route groups.
//
// /api/auth is public. /api/user, /api/post, and /api/comments require the
// Authorization header. /api/file accepts the token as a query parameter so
// stored images can be referenced from <img> tags.
func registerAPIRoutes(e *echo.Echo, mws *middleware.Middlewares, h *handler.Handlers) {
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated, "User created successfully."))
	auth.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK, "Login successful."))

	headerAuth := mws.Auth.RequireAuth(middleware.AuthOptions{})

	user := api.Group("/user", headerAuth)
	user.GET("/profile", handler.Handle(h.Users.Handler, h.Users.Profile, http.StatusOK, ""))
	user.PATCH("/profile",
		handler.Handle(h.Users.Handler, h.Users.UpdateProfile, http.StatusOK, "Profile updated successfully."),
		mws.Upload.Single("image", storage.UsersDir))
	user.PUT("/password", handler.HandleMessage(h.Users.Handler, h.Users.UpdatePassword, http.StatusOK, "Password updated successfully."))
	user.DELETE("", handler.HandleMessage(h.Users.Handler, h.Users.DeleteAccount, http.StatusOK, "Your account has been deleted."))

	post := api.Group("/post", headerAuth)
	post.POST("",
		handler.Handle(h.Posts.Handler, h.Posts.Create, http.StatusCreated, "Post created successfully."),
		mws.Upload.Single("image", storage.PostsDir))
	post.GET("", handler.Handle(h.Posts.Handler, h.Posts.List, http.StatusOK, ""))
	post.GET("/:id", handler.Handle(h.Posts.Handler, h.Posts.Get, http.StatusOK, ""))
	post.PATCH("/:id",
		handler.Handle(h.Posts.Handler, h.Posts.Update, http.StatusOK, "Post updated successfully."),
		mws.Upload.Single("image", storage.PostsDir))
	post.DELETE("/:id", handler.HandleMessage(h.Posts.Handler, h.Posts.Delete, http.StatusOK, "Post deleted successfully."))
	post.PATCH("/:id/like", handler.Handle(h.Posts.Handler, h.Posts.ToggleLike, http.StatusOK, "Post like updated successfully."))
	post.POST("/:id/comments", handler.Handle(h.Posts.Handler, h.Posts.CreateComment, http.StatusCreated, "Comment created successfully."))
	post.GET("/:id/comments", handler.Handle(h.Posts.Handler, h.Posts.ListComments, http.StatusOK, ""))

	comments := api.Group("/comments", headerAuth)
	comments.GET("/:id", handler.Handle(h.Comments.Handler, h.Comments.Get, http.StatusOK, ""))
	comments.PUT("/:id", handler.Handle(h.Comments.Handler, h.Comments.Update, http.StatusOK, "Comment updated successfully."))
	comments.DELETE("/:id", handler.HandleMessage(h.Comments.Handler, h.Comments.Delete, http.StatusOK, "Comment deleted successfully."))

	urlAuth := mws.Auth.RequireAuth(middleware.AuthOptions{URLTokenOnly: true})

	file := api.Group("/file", urlAuth)
	file.GET("/user/avatar/:filename", handler.HandleFile(h.Files.Handler, h.Files.Avatar))
	file.GET("/post/:filename", handler.HandleFile(h.Files.Handler, h.Files.PostFile))
}
