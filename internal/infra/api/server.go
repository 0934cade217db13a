package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"engagesphere/internal/config"
	"engagesphere/internal/usecase"
)

// Server holds the use cases behind the REST surface and knows how to mount
// them on a chi router.
type Server struct {
	userUC    usecase.UserUseCase
	adminUC   usecase.AdminUseCase
	planUC    usecase.PlanUseCase
	orderUC   usecase.OrderUseCase
	subUC     usecase.SubscriptionUseCase
	receiptUC usecase.ReceiptUseCase
	serviceUC usecase.ServiceUseCase
	contactUC usecase.ContactUseCase
	countryUC usecase.CountryUseCase

	auth *AuthManager
	log  *zerolog.Logger
}

func NewServer(
	userUC usecase.UserUseCase,
	adminUC usecase.AdminUseCase,
	planUC usecase.PlanUseCase,
	orderUC usecase.OrderUseCase,
	subUC usecase.SubscriptionUseCase,
	receiptUC usecase.ReceiptUseCase,
	serviceUC usecase.ServiceUseCase,
	contactUC usecase.ContactUseCase,
	countryUC usecase.CountryUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		userUC:    userUC,
		adminUC:   adminUC,
		planUC:    planUC,
		orderUC:   orderUC,
		subUC:     subUC,
		receiptUC: receiptUC,
		serviceUC: serviceUC,
		contactUC: contactUC,
		countryUC: countryUC,
		auth:      auth,
		log:       logger,
	}
}

// Router builds the full route tree with the guard chain applied.
func (s *Server) Router(cfg config.HTTPConfig) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/user", func(r chi.Router) {
		r.Post("/request-otp", s.handleUserRequestOTP)
		r.Post("/verify-otp", s.handleUserVerifyOTP)
		r.Post("/register", s.handleUserRegister)
		r.Post("/login", s.handleUserLogin)
		r.Post("/requestOtp", s.handleUserRequestReset)
		r.Post("/verifReset", s.handleUserVerifyReset)
		r.Post("/updatePass", s.handleUserUpdatePass)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAuth)
			r.Post("/getById", s.handleUserGetByID)
			r.Post("/update", s.handleUserUpdate)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			r.Post("/getAll", s.handleUserGetAll)
			r.Get("/all", s.handleUserAll)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", s.handleAdminLogin)
		r.Post("/forgot-password", s.handleAdminForgotPassword)
		r.Post("/reset-password", s.handleAdminResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			r.Post("/update-email/request", s.handleAdminUpdateEmail)
			r.Post("/update-password", s.handleAdminUpdatePassword)
		})
	})

	r.Route("/plan", func(r chi.Router) {
		r.Post("/all", s.handlePlanAll)
		r.Post("/getByPlanId", s.handlePlanGetByID)
		r.Post("/getByname", s.handlePlanGetByName)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			r.Post("/create", s.handlePlanCreate)
			r.Post("/update", s.handlePlanUpdate)
			r.Post("/deletePlan", s.handlePlanDelete)
			r.Post("/deletePricing", s.handlePlanDeletePricing)
		})
	})

	r.Route("/payment", func(r chi.Router) {
		r.Use(s.auth.RequireAuth)
		r.Post("/order", s.handlePaymentOrder)
		r.Post("/verify", s.handlePaymentVerify)
	})

	r.Route("/subscription", func(r chi.Router) {
		r.Use(s.auth.RequireAuth)
		r.Post("/user", s.handleSubscriptionUser)
		r.Post("/cancel", s.handleSubscriptionCancel)
		r.Post("/update", s.handleSubscriptionUpdate)
		r.Post("/renew", s.handleSubscriptionRenew)
	})

	r.Route("/receipt", func(r chi.Router) {
		r.Use(s.auth.RequireAuth)
		r.Post("/generate", s.handleReceiptGenerate)
		r.Post("/view", s.handleReceiptView)
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/getAll", s.handleServiceGetAll)
		r.Post("/getById", s.handleServiceGetByID)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			r.Post("/create", s.handleServiceCreate)
			r.Post("/update", s.handleServiceUpdate)
			r.Post("/deleteContent", s.handleServiceDeleteContent)
			r.Post("/delete", s.handleServiceDelete)
		})
	})

	r.Route("/contact", func(r chi.Router) {
		r.Post("/contact", s.handleContactSubmit)
		r.With(s.auth.RequireAdmin).Get("/all", s.handleContactAll)
	})

	r.Get("/country/getAll", s.handleCountryGetAll)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return Chain(r,
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		CORS(cfg.FrontendOrigin),
		Timeout(timeout),
	)
}
