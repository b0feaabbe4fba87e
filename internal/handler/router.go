package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/hogoken/internal/metrics"
	"github.com/hitoshi/hogoken/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig

	// メトリクス
	MetricsCollector metrics.MetricsCollector
	MetricsGatherer  prometheus.Gatherer

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 保護犬
	DogService DogServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → CORS → Metrics
//
// 認証が必要なルートにはさらに Session → CSRF → RateLimit(General) を適用する。
// GET /dogs は公開エンドポイント（未ログインでも閲覧可能）のため
// 認証チェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルート共通のミドルウェア
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.MetricsCollector != nil {
		r.Use(metrics.NewMiddleware(deps.MetricsCollector))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	dogHandler := NewDogHandler(deps.DogService)
	userHandler := NewUserHandler(deps.DogService)

	// --- 認証不要のルート ---

	// ヘルスチェック
	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	// メトリクス
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// 認証ルート（パスワード認証フロー）とCSRFトークン発行
	r.Route("/auth", func(r chi.Router) {
		r.Get("/csrf", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// 保護犬一覧は公開エンドポイント
	r.Get("/dogs", dogHandler.ListDogs)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 保護犬管理
		// POST /dogs - 保護犬登録（登録専用レート制限を追加）
		r.With(deps.RateLimiter.DogRegistrationMiddleware()).Post("/dogs", dogHandler.RegisterDog)

		r.Route("/dogs/{id}", func(r chi.Router) {
			r.Patch("/adopt", dogHandler.AdoptDog)
			r.Patch("/remove", dogHandler.RemoveDog)
		})

		// 自分に紐づく保護犬の一覧
		r.Route("/users/me", func(r chi.Router) {
			r.Get("/dogs", userHandler.ListMyDogs)
			r.Get("/adoptedDogs", userHandler.ListMyAdoptedDogs)
		})
	})

	return r
}
