package testserver

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"invoicegen-cli/utils"
)

// Server is an in-process stand-in for the remote invoice service,
// mirroring its documented routes, auth scheme and response shapes so
// the SDK can be exercised end to end without a network listener. It
// deliberately answers with the awkward payloads the real backend is
// known for: plain-text acks and Spring-style date arrays.
type Server struct {
	app    *fiber.App
	st     *memoryStore
	secret []byte

	// replayed responses per Idempotency-Key
	idemMu sync.Mutex
	idem   map[string]idemRecord
}

type idemRecord struct {
	status int
	body   []byte
}

var validate = validator.New()

// New builds a ready-to-use fake backend.
func New() *Server {
	s := &Server{
		st:     newMemoryStore(),
		secret: []byte("testserver-secret-" + uuid.NewString()),
		idem:   make(map[string]idemRecord),
	}
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})

	app.Post("/home/signup", s.signup)
	app.Post("/home/login", s.login)

	protected := app.Group("/invoice")
	protected.Use(s.requireBearer)
	protected.Use(s.idempotency)
	protected.Post("/create-invoice", s.createInvoice)
	protected.Get("/get-all-invoice", s.listInvoices)
	protected.Post("/by-customer", s.listByCustomer)
	protected.Put("/update/:id", s.updateInvoice)
	protected.Delete("/delete/:id", s.deleteInvoice)

	s.app = app
	return s
}

// App exposes the underlying fiber app for the test transport.
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler centralizes error responses, matching the JSON error
// shape of the real backend.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve))
		for _, f := range ve {
			out[f.Field()] = f.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
}

type signupUser struct {
	UserName    string `json:"userName" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	ContactNo   string `json:"contactNo" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
}

func (s *Server) signup(c *fiber.Ctx) error {
	userPart := c.FormValue("user")
	if userPart == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing user part")
	}
	var su signupUser
	if err := json.Unmarshal([]byte(userPart), &su); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user part")
	}
	if err := validate.Struct(&su); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &user{
		UserName:    su.UserName,
		Email:       su.Email,
		Password:    hash,
		ContactNo:   su.ContactNo,
		CompanyName: su.CompanyName,
	}

	if fh, err := c.FormFile("logo"); err == nil {
		f, err := fh.Open()
		if err == nil {
			u.Logo, _ = io.ReadAll(f)
			f.Close()
		}
	}

	if !s.st.addUser(u) {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}
	return c.SendString("User registered successfully")
}

func (s *Server) login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	u := s.st.findUser(data["email"])
	if u == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.Password, []byte(data["password"])); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := s.generateJWT(u.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Success",
		"token":    token,
		"userName": u.UserName,
		"email":    u.Email,
	})
}

func (s *Server) generateJWT(email string) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

const bearerPrefix = "Bearer "

// requireBearer validates the Authorization header, enforcing HS256.
func (s *Server) requireBearer(c *fiber.Ctx) error {
	h := c.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), strings.ToLower(bearerPrefix)) {
		return fiber.NewError(fiber.StatusUnauthorized, "missing/invalid Authorization header")
	}
	raw := strings.TrimSpace(h[len(bearerPrefix):])
	if raw == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}

	c.Locals("email", claims.Subject)
	return c.Next()
}

// idempotency replays the stored response for a repeated
// Idempotency-Key on mutating methods, like the production backend.
func (s *Server) idempotency(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodDelete {
		return c.Next()
	}
	// c.Get returns a string aliasing fiber's reusable request buffer;
	// clone it before using it as a map key that outlives this request.
	key := strings.Clone(strings.TrimSpace(c.Get("Idempotency-Key")))
	if key == "" {
		return c.Next()
	}

	s.idemMu.Lock()
	if rec, ok := s.idem[key]; ok {
		s.idemMu.Unlock()
		c.Status(rec.status)
		return c.Send(rec.body)
	}
	s.idemMu.Unlock()

	if err := c.Next(); err != nil {
		return err
	}

	body := make([]byte, len(c.Response().Body()))
	copy(body, c.Response().Body())
	s.idemMu.Lock()
	s.idem[key] = idemRecord{status: c.Response().StatusCode(), body: body}
	s.idemMu.Unlock()
	return nil
}

type createInvoiceDTO struct {
	CustomerName        string      `json:"customerName" validate:"required"`
	CustomerEmail       string      `json:"customerEmail" validate:"required,email"`
	CompanyOrIndividual string      `json:"companyOrIndividual"`
	TotalAmount         json.Number `json:"totalAmount"`
	InvoiceDate         string      `json:"invoiceDate"`
}

type productDTO struct {
	ProductName string `json:"productName" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
}

type invoiceEnvelope struct {
	CreateInvoiceDTO createInvoiceDTO `json:"createInvoiceDto"`
	AddProductsDTO   []productDTO     `json:"addProductsDto"`
}

func (s *Server) parseEnvelope(c *fiber.Ctx) (*invoiceEnvelope, error) {
	var env invoiceEnvelope
	if err := c.BodyParser(&env); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&env.CreateInvoiceDTO); err != nil {
		return nil, err
	}
	if len(env.AddProductsDTO) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "no products provided")
	}
	for i := range env.AddProductsDTO {
		if err := validate.Struct(&env.AddProductsDTO[i]); err != nil {
			return nil, err
		}
	}
	return &env, nil
}

func envelopeInvoice(env *invoiceEnvelope) *invoice {
	inv := &invoice{
		CustomerName:        env.CreateInvoiceDTO.CustomerName,
		CustomerEmail:       env.CreateInvoiceDTO.CustomerEmail,
		CompanyOrIndividual: env.CreateInvoiceDTO.CompanyOrIndividual,
		InvoiceDate:         env.CreateInvoiceDTO.InvoiceDate,
	}
	// Totals are recomputed server-side; the submitted totalAmount is
	// not trusted.
	var total float64
	for _, p := range env.AddProductsDTO {
		price, _ := strconv.ParseFloat(p.Price, 64)
		qty, _ := strconv.ParseFloat(p.Quantity, 64)
		total += price * qty
		inv.Products = append(inv.Products, product(p))
	}
	inv.TotalAmount = utils.Round2(total)
	return inv
}

func (s *Server) createInvoice(c *fiber.Ctx) error {
	env, err := s.parseEnvelope(c)
	if err != nil {
		return err
	}
	inv := envelopeInvoice(env)
	if inv.CompanyOrIndividual == "" {
		inv.CompanyOrIndividual = "Individual"
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	s.st.addInvoice(inv)
	return c.SendString("Invoice created successfully")
}

// renderInvoice emits the shapes the real backend produces: price as a
// JSON number, quantity as a string, createdAt as a 1-based-month date
// array and updatedAt as an ISO string.
func renderInvoice(inv *invoice) fiber.Map {
	products := make([]fiber.Map, 0, len(inv.Products))
	for _, p := range inv.Products {
		price, _ := strconv.ParseFloat(p.Price, 64)
		products = append(products, fiber.Map{
			"productName": p.ProductName,
			"price":       price,
			"quantity":    p.Quantity,
		})
	}
	created := inv.CreatedAt
	return fiber.Map{
		"id":                  inv.ID,
		"customerName":        inv.CustomerName,
		"customerEmail":       inv.CustomerEmail,
		"companyOrIndividual": inv.CompanyOrIndividual,
		"products":            products,
		"totalAmount":         inv.TotalAmount,
		"createdAt": []int{
			created.Year(), int(created.Month()), created.Day(),
			created.Hour(), created.Minute(), created.Second(),
		},
		"updatedAt": inv.UpdatedAt.Format("2006-01-02T15:04:05"),
	}
}

func (s *Server) listInvoices(c *fiber.Ctx) error {
	out := make([]fiber.Map, 0)
	for _, inv := range s.st.listInvoices() {
		out = append(out, renderInvoice(inv))
	}
	return c.JSON(out)
}

func (s *Server) listByCustomer(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	out := make([]fiber.Map, 0)
	for _, inv := range s.st.listInvoices() {
		if inv.CustomerEmail == data["customerEmail"] {
			out = append(out, renderInvoice(inv))
		}
	}
	return c.JSON(out)
}

func (s *Server) updateInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}
	existing := s.st.getInvoice(id)
	if existing == nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}

	env, err := s.parseEnvelope(c)
	if err != nil {
		return err
	}
	updated := envelopeInvoice(env)
	if updated.CompanyOrIndividual == "" {
		updated.CompanyOrIndividual = existing.CompanyOrIndividual
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	s.st.mu.Lock()
	s.st.invoices[id] = updated
	s.st.mu.Unlock()
	return c.SendString("Invoice updated successfully")
}

func (s *Server) deleteInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}
	if !s.st.deleteInvoice(id) {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	return c.SendString("Invoice deleted successfully")
}
