// Package blogplatform предоставляет маршруты для основного приложения.
package blogplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/auth/register"
	commentcreate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/comment/create"
	commentlist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/comment/list"
	commentread "github.com/magabrotheeeer/blog-platform/internal/http/handlers/comment/read"
	commentremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/comment/remove"
	commentupdate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/comment/update"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/health"
	likecreate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/like/create"
	likelist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/like/list"
	likelistbyuser "github.com/magabrotheeeer/blog-platform/internal/http/handlers/like/listbyuser"
	likeremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/like/remove"
	postcreate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/create"
	postlist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/list"
	postpopular "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/popular"
	postread "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/read"
	postreadslug "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/readslug"
	postremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/remove"
	postupdate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/update"
	postview "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/view"
	tagcreate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/tag/create"
	taglist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/tag/list"
	tagpopular "github.com/magabrotheeeer/blog-platform/internal/http/handlers/tag/popular"
	tagread "github.com/magabrotheeeer/blog-platform/internal/http/handlers/tag/read"
	tagreadbyname "github.com/magabrotheeeer/blog-platform/internal/http/handlers/tag/readbyname"
	tagremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/tag/remove"
	usercomments "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/comments"
	userlist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/list"
	userposts "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/posts"
	userread "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	authservice "github.com/magabrotheeeer/blog-platform/internal/services/auth"
	commentservice "github.com/magabrotheeeer/blog-platform/internal/services/comment"
	likeservice "github.com/magabrotheeeer/blog-platform/internal/services/like"
	postservice "github.com/magabrotheeeer/blog-platform/internal/services/post"
	tagservice "github.com/magabrotheeeer/blog-platform/internal/services/tag"
	userservice "github.com/magabrotheeeer/blog-platform/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	postService *postservice.PostService,
	commentService *commentservice.CommentService,
	likeService *likeservice.LikeService,
	tagService *tagservice.TagService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService).ServeHTTP)

		r.Get("/posts", postlist.New(logger, postService).ServeHTTP)
		r.Get("/posts/popular", postpopular.New(logger, postService).ServeHTTP)
		r.Get("/posts/slug/{slug}", postreadslug.New(logger, postService).ServeHTTP)
		r.Get("/posts/{id}", postread.New(logger, postService).ServeHTTP)
		r.Get("/posts/{id}/likes", likelist.New(logger, likeService).ServeHTTP)
		r.Post("/posts/{id}/view", postview.New(logger, postService).ServeHTTP)
		r.Get("/comments", commentlist.New(logger, commentService).ServeHTTP)
		r.Get("/comments/{id}", commentread.New(logger, commentService).ServeHTTP)
		r.Get("/tags", taglist.New(logger, tagService).ServeHTTP)
		r.Get("/tags/popular", tagpopular.New(logger, tagService).ServeHTTP)
		r.Get("/tags/name/{name}", tagreadbyname.New(logger, tagService).ServeHTTP)
		r.Get("/tags/{id}", tagread.New(logger, tagService).ServeHTTP)
		r.Get("/users/{uid}", userread.New(logger, userService).ServeHTTP)
		r.Get("/users/{uid}/posts", userposts.New(logger, userService).ServeHTTP)
		r.Get("/users/{uid}/comments", usercomments.New(logger, userService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)
			r.Get("/auth/profile", profile.New(logger, authService).ServeHTTP)
			r.Put("/auth/password", changepassword.New(logger, authService).ServeHTTP)

			r.Patch("/users/{uid}", userupdate.New(logger, userService).ServeHTTP)
			r.Get("/likes/user/{uid}", likelistbyuser.New(logger, likeService).ServeHTTP)

			r.Post("/posts", postcreate.New(logger, postService).ServeHTTP)
			r.Put("/posts/{id}", postupdate.New(logger, postService).ServeHTTP)
			r.Delete("/posts/{id}", postremove.New(logger, postService).ServeHTTP)
			r.Post("/posts/{id}/like", likecreate.New(logger, likeService).ServeHTTP)
			r.Delete("/posts/{id}/like", likeremove.New(logger, likeService).ServeHTTP)

			r.Post("/comments", commentcreate.New(logger, commentService).ServeHTTP)
			r.Put("/comments/{id}", commentupdate.New(logger, commentService).ServeHTTP)
			r.Delete("/comments/{id}", commentremove.New(logger, commentService).ServeHTTP)
		})

		// Группа только для администраторов
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))

			r.Get("/admin/users", userlist.New(logger, userService).ServeHTTP)
			r.Delete("/admin/users/{uid}", userremove.New(logger, userService).ServeHTTP)
			r.Post("/admin/tags", tagcreate.New(logger, tagService).ServeHTTP)
			r.Delete("/admin/tags/{id}", tagremove.New(logger, tagService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
