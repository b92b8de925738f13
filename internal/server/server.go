package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TwinexTecnologia/bodybrothers/internal/anamnesis"
	anamnesisdomain "github.com/TwinexTecnologia/bodybrothers/internal/anamnesis/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/auth"
	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/auth/session"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	"github.com/TwinexTecnologia/bodybrothers/internal/config"
	"github.com/TwinexTecnologia/bodybrothers/internal/diet"
	dietdomain "github.com/TwinexTecnologia/bodybrothers/internal/diet/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/finance"
	financedomain "github.com/TwinexTecnologia/bodybrothers/internal/finance/domain"
	obsmetrics "github.com/TwinexTecnologia/bodybrothers/internal/observability/metrics"
	"github.com/TwinexTecnologia/bodybrothers/internal/payment"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/plan"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/providers/pdf"
	"github.com/TwinexTecnologia/bodybrothers/internal/student"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/workout"
	workoutdomain "github.com/TwinexTecnologia/bodybrothers/internal/workout/domain"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(registerGin),
	auth.Module,
	plan.Module,
	student.Module,
	payment.Module,
	finance.Module,
	workout.Module,
	diet.Module,
	anamnesis.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log.Named("http")))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	sessions     *session.Manager
	authsvc      authdomain.Service
	plansvc      plandomain.Service
	studentsvc   studentdomain.Service
	paymentsvc   paymentdomain.Service
	financesvc   financedomain.Service
	workoutsvc   workoutdomain.Service
	dietsvc      dietdomain.Service
	anamnesissvc anamnesisdomain.Service
	pdfProvider  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Sessions     *session.Manager
	Authsvc      authdomain.Service
	Plansvc      plandomain.Service
	Studentsvc   studentdomain.Service
	Paymentsvc   paymentdomain.Service
	Financesvc   financedomain.Service
	Workoutsvc   workoutdomain.Service
	Dietsvc      dietdomain.Service
	Anamnesissvc anamnesisdomain.Service
	PDFProvider  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		log:          p.Log.Named("server"),
		genID:        p.GenID,
		clock:        p.Clock,
		sessions:     p.Sessions,
		authsvc:      p.Authsvc,
		plansvc:      p.Plansvc,
		studentsvc:   p.Studentsvc,
		paymentsvc:   p.Paymentsvc,
		financesvc:   p.Financesvc,
		workoutsvc:   p.Workoutsvc,
		dietsvc:      p.Dietsvc,
		anamnesissvc: p.Anamnesissvc,
		pdfProvider:  p.PDFProvider,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Plans --------
	api.GET("/plans", s.ListPlans)
	api.POST("/plans", s.CreatePlan)
	api.GET("/plans/:id", s.GetPlanByID)
	api.PATCH("/plans/:id", s.UpdatePlan)
	api.POST("/plans/:id/deactivate", s.DeactivatePlan)

	// -------- Students --------
	api.GET("/students", s.ListStudents)
	api.POST("/students", s.CreateStudent)
	api.GET("/students/:id", s.GetStudentByID)
	api.PATCH("/students/:id", s.UpdateStudent)
	api.POST("/students/:id/deactivate", s.DeactivateStudent)
	api.POST("/students/:id/plan", s.AssignStudentPlan)
	api.GET("/students/:id/finance", s.GetStudentFinance)
	api.GET("/students/:id/workouts", s.ListStudentWorkouts)
	api.GET("/students/:id/diets", s.ListStudentDiets)
	api.GET("/students/:id/anamnesis", s.ListStudentAnamnesis)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.DELETE("/payments/:id", s.UndoPayment)
	api.GET("/payments/:id/receipt", s.PaymentReceiptPDF)

	// -------- Finance --------
	api.GET("/finance/overview", s.GetMonthlyOverview)

	// -------- Workout protocols --------
	api.GET("/workouts", s.ListWorkouts)
	api.POST("/workouts", s.CreateWorkout)
	api.GET("/workouts/:id", s.GetWorkoutByID)
	api.PATCH("/workouts/:id", s.UpdateWorkout)
	api.DELETE("/workouts/:id", s.DeleteWorkout)
	api.POST("/workouts/:id/assign", s.AssignWorkout)
	api.GET("/workouts/:id/pdf", s.WorkoutPDF)

	// -------- Diet protocols --------
	api.GET("/diets", s.ListDiets)
	api.POST("/diets", s.CreateDiet)
	api.GET("/diets/:id", s.GetDietByID)
	api.PATCH("/diets/:id", s.UpdateDiet)
	api.DELETE("/diets/:id", s.DeleteDiet)
	api.POST("/diets/:id/assign", s.AssignDiet)

	// -------- Anamnesis --------
	api.GET("/anamnesis", s.ListAnamnesisModels)
	api.POST("/anamnesis", s.CreateAnamnesisModel)
	api.GET("/anamnesis/:id", s.GetAnamnesisModel)
	api.PATCH("/anamnesis/:id", s.UpdateAnamnesisModel)
	api.DELETE("/anamnesis/:id", s.DeleteAnamnesisModel)
	api.POST("/anamnesis/:id/responses", s.SubmitAnamnesisResponse)
}
