package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/middlewares"
	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/Pallab-Dutta/KhidkiVada/models/reports"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const defaultPort = "8080"

var tracer = otel.Tracer("khidkivada-backend")

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Shutdown coordination: handle SIGTERM for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP; until the DB is ready we return 503 for
	// app endpoints.
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(readinessGate())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); otherwise allow all for developer convenience.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.POST("/login", loginHandler())
	r.GET("/items", itemCatalogHandler())

	admin := r.Group("/", middlewares.RequireRole(string(models.UserRoleAdmin)))
	admin.POST("/clients", createClientHandler())
	admin.GET("/clients", listClientsHandler())
	admin.GET("/clients/:id", getClientHandler())
	admin.POST("/orders", createOrderHandler())
	admin.POST("/orders/:id/payments", recordPaymentHandler())
	admin.PUT("/orders/:id/status", setOrderStatusHandler())
	admin.GET("/reports/orders.xlsx", exportOrdersHandler())

	r.GET("/orders", listOrdersHandler())
	r.GET("/orders/:id", getOrderHandler())
	r.GET("/orders/:id/invoice", invoiceHandler())

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{"port": port}).Info("server started")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// readinessGate returns 503 for app endpoints until the database handle
// is available; /healthz stays reachable throughout.
func readinessGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// customErrorLogger logs only requests that recorded errors, tagged with
// the correlation id and (when authenticated) the acting user.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			fields := logrus.Fields{"path": c.Request.URL.Path}
			if cid, ok := utils.GetCorrelationIdFromContext(c.Request.Context()); ok {
				fields["correlationId"] = cid
			}
			if userId, ok := utils.GetUserIdFromContext(c.Request.Context()); ok {
				fields["userId"] = userId
			}
			logger.WithFields(fields).Error(c.Errors.String())
		}
	}
}

// statusForError maps domain error kinds to HTTP statuses; everything
// else is treated as a bad request (expected failures are always typed).
func statusForError(err error) int {
	switch {
	case errors.Is(err, utils.ErrorOrderNotFound),
		errors.Is(err, utils.ErrorClientNotFound),
		errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrorOverpaymentRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrorOrderCancelled):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// respondBindError reports which fields failed binding validation when
// that detail is available.
func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(validationErrors)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func loginHandler() gin.HandlerFunc {
	type loginInput struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		info, err := models.Login(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func createClientHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewClient
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		client, err := models.CreateClient(c.Request.Context(), &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, client)
	}
}

func listClientsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var clientType *models.ClientType
		if v := c.Query("type"); v != "" {
			t := models.ClientType(v)
			if !t.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client type"})
				return
			}
			clientType = &t
		}
		clients, err := models.ListClients(c.Request.Context(), clientType)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, clients)
	}
}

func getClientHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		client, err := models.GetClient(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

func createOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "createOrder")
		defer span.End()

		var input models.NewOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.CreateOrder(ctx, &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, orderResponse(order))
	}
}

// paymentInput accepts the amount either as a JSON number or as a
// user-formatted string ("₹1,764.00", "Rs 1764") pasted from a bank
// statement.
type paymentInput struct {
	Amount      json.RawMessage `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
}

func (in paymentInput) toNewPayment() (models.NewPayment, error) {
	amount, err := utils.ParseAmount(strings.Trim(strings.TrimSpace(string(in.Amount)), `"`))
	if err != nil {
		return models.NewPayment{}, err
	}
	return models.NewPayment{Amount: amount, PaymentDate: in.PaymentDate}, nil
}

func itemCatalogHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": models.ItemCatalog()})
	}
}

func recordPaymentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "recordPayment")
		defer span.End()

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var raw paymentInput
		if err := c.ShouldBindJSON(&raw); err != nil {
			respondBindError(c, err)
			return
		}
		input, err := raw.toNewPayment()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := models.RecordPayment(ctx, id, input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, orderResponse(order))
	}
}

func setOrderStatusHandler() gin.HandlerFunc {
	type statusInput struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var input statusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.SetOrderStatus(c.Request.Context(), id, input.Status)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, orderResponse(order))
	}
}

func getOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		order, err := models.GetOrder(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !orderVisible(c, order) {
			c.JSON(http.StatusNotFound, gin.H{"error": utils.ErrorOrderNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, orderResponse(order))
	}
}

func listOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := orderFilterFromQuery(c)
		if err != nil {
			c.JSON(filterErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		orders, err := models.ListOrders(c.Request.Context(), filter)
		if err != nil {
			abortWithError(c, err)
			return
		}
		out := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderResponse(o))
		}
		c.JSON(http.StatusOK, out)
	}
}

func invoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		order, err := models.GetOrder(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !orderVisible(c, order) {
			c.JSON(http.StatusNotFound, gin.H{"error": utils.ErrorOrderNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, models.RenderInvoiceData(order))
	}
}

func exportOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := orderFilterFromQuery(c)
		if err != nil {
			c.JSON(filterErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		if err := reports.ExportOrdersExcel(c.Request.Context(), c.Writer, filter); err != nil {
			abortWithError(c, err)
		}
	}
}

// orderFilterFromQuery builds the list filter from query params; client
// users are always scoped to their own orders.
func orderFilterFromQuery(c *gin.Context) (models.OrderFilter, error) {
	var filter models.OrderFilter

	if v := c.Query("type"); v != "" {
		t := models.ClientType(v)
		if !t.Valid() {
			return filter, errors.New("invalid client type")
		}
		filter.ClientType = &t
	}
	filter.ClientName = c.Query("client")
	if v := c.Query("from"); v != "" {
		d, err := parseDateParam(v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := parseDateParam(v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &d
	}

	role, _ := utils.GetRoleFromContext(c.Request.Context())
	if role != string(models.UserRoleAdmin) {
		name, ok := utils.GetClientNameFromContext(c.Request.Context())
		if !ok || name == "" {
			return filter, errMissingIdentity
		}
		filter.ClientName = name
	}
	return filter, nil
}

// errMissingIdentity marks a request that reached an identity-scoped
// endpoint without a usable token.
var errMissingIdentity = errors.New("unauthorized")

func filterErrorStatus(err error) int {
	if errors.Is(err, errMissingIdentity) {
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}

func parseDateParam(v string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", v); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, v)
}

func orderVisible(c *gin.Context, order *models.Order) bool {
	role, _ := utils.GetRoleFromContext(c.Request.Context())
	if role == string(models.UserRoleAdmin) {
		return true
	}
	name, ok := utils.GetClientNameFromContext(c.Request.Context())
	return ok && name != "" && name == order.ClientName
}

// orderResponse attaches derived totals to the serialized order.
func orderResponse(order *models.Order) gin.H {
	return gin.H{
		"order":  order,
		"totals": order.Totals(),
	}
}
