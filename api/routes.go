package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-rules/internal/handlers/v1/budget"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/rule"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/status"
	"github.com/carson-networks/budget-rules/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/service"
	"github.com/carson-networks/budget-rules/internal/storage"
)

type Rest struct {
	Logger          *logrus.Logger
	Port            string
	Storage         *storage.Storage
	Service         *service.Service
	DefaultCurrency string
}

// Routes builds the mux with /status and every /v1 operation registered.
func (r *Rest) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Budget Rules API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	txSvc := r.Service.Transaction
	transaction.NewCreateTransactionHandler(txSvc, r.DefaultCurrency).Register(api)
	transaction.NewUpdateTransactionHandler(txSvc).Register(api)
	transaction.NewGetTransactionHandler(txSvc).Register(api)
	transaction.NewListTransactionsHandler(txSvc).Register(api)
	transaction.NewEvaluateTransactionHandler(txSvc, r.DefaultCurrency).Register(api)
	transaction.NewCreateRecurringHandler(txSvc, r.DefaultCurrency).Register(api)

	budgetSvc := r.Service.Budget
	budget.NewCreateBudgetHandler(budgetSvc, r.DefaultCurrency).Register(api)
	budget.NewUpdateBudgetHandler(budgetSvc, r.DefaultCurrency).Register(api)
	budget.NewListBudgetsHandler(budgetSvc).Register(api)
	budget.NewBudgetSummaryHandler(budgetSvc).Register(api)
	budget.NewEvaluateBudgetHandler(budgetSvc).Register(api)
	budget.NewBudgetAlertsHandler(budgetSvc).Register(api)
	budget.NewActiveBudgetsHandler(budgetSvc).Register(api)
	budget.NewUtilizationHandler(budgetSvc).Register(api)
	budget.NewSpendingByCategoryHandler(budgetSvc).Register(api)
	budget.NewWouldExceedHandler(budgetSvc).Register(api)

	rule.NewHandler(r.Service.Rule).Register(api)

	return mux
}

// Serve blocks until ctx is cancelled or the listener fails.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
