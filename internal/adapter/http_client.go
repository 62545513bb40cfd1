package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avialine/flight-booking/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig configures [NewHTTPAPIClient].
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpAPIClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPAPIClient constructs an HTTP/REST implementation of [APIClient].
// It normalises and validates cfg.BaseURL and configures the underlying
// client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPAPIClient(cfg HTTPClientConfig) (APIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpAPIClient{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent authenticated requests.
func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the client, or an empty
// string if none has been set.
func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register creates an account via POST /users and then logs in with the same
// credentials so the client holds a usable token afterwards.
func (h *httpAPIClient) Register(ctx context.Context, user models.User) (models.User, error) {
	password := user.Password

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	// decoded by hand so the client does not depend on the server sending a
	// JSON content type
	var created models.User
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.User{}, fmt.Errorf("decode /users response: %w", err)
	}

	if _, err := h.Login(ctx, created.Email, password); err != nil {
		return models.User{}, fmt.Errorf("register login: %w", err)
	}

	return created, nil
}

// Login authenticates via POST /auth/login and stores the returned token.
func (h *httpAPIClient) Login(ctx context.Context, email, password string) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	var token models.Token
	if err = json.Unmarshal(resp.Body(), &token); err != nil {
		return models.Token{}, fmt.Errorf("decode /auth/login response: %w", err)
	}

	h.SetToken(token.SignedString)
	return token, nil
}

func (h *httpAPIClient) GetFlights(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := h.get(ctx, "/flights", &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (h *httpAPIClient) GetFlight(ctx context.Context, id int64) (models.Flight, error) {
	var flight models.Flight
	if err := h.get(ctx, fmt.Sprintf("/flights/%d", id), &flight); err != nil {
		return models.Flight{}, err
	}
	return flight, nil
}

func (h *httpAPIClient) CreateFlight(ctx context.Context, flight models.Flight) (models.Flight, error) {
	var created models.Flight
	if err := h.send(ctx, resty.MethodPost, "/flights", flight, &created); err != nil {
		return models.Flight{}, err
	}
	return created, nil
}

func (h *httpAPIClient) UpdateFlight(ctx context.Context, flight models.Flight) (models.Flight, error) {
	var updated models.Flight
	if err := h.send(ctx, resty.MethodPut, fmt.Sprintf("/flights/%d", flight.ID), flight, &updated); err != nil {
		return models.Flight{}, err
	}
	return updated, nil
}

func (h *httpAPIClient) PatchFlight(ctx context.Context, id int64, updates map[string]any) (models.Flight, error) {
	var updated models.Flight
	if err := h.send(ctx, resty.MethodPatch, fmt.Sprintf("/flights/%d", id), updates, &updated); err != nil {
		return models.Flight{}, err
	}
	return updated, nil
}

func (h *httpAPIClient) DeleteFlight(ctx context.Context, id int64) error {
	return h.send(ctx, resty.MethodDelete, fmt.Sprintf("/flights/%d", id), nil, nil)
}

func (h *httpAPIClient) GetFlightTickets(ctx context.Context, flightID int64) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := h.get(ctx, fmt.Sprintf("/flights/%d/tickets", flightID), &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (h *httpAPIClient) CreateFlightTickets(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	body := map[string]int{"seats": seats}
	if err := h.send(ctx, resty.MethodPost, fmt.Sprintf("/flights/%d/tickets", flightID), body, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (h *httpAPIClient) GetTicket(ctx context.Context, id int64) (models.Ticket, error) {
	var ticket models.Ticket
	if err := h.get(ctx, fmt.Sprintf("/tickets/%d", id), &ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (h *httpAPIClient) PatchTicket(ctx context.Context, id int64, updates map[string]any) (models.Ticket, error) {
	var updated models.Ticket
	if err := h.send(ctx, resty.MethodPatch, fmt.Sprintf("/tickets/%d", id), updates, &updated); err != nil {
		return models.Ticket{}, err
	}
	return updated, nil
}

func (h *httpAPIClient) GetBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := h.get(ctx, "/bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (h *httpAPIClient) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	var booking models.Booking
	if err := h.get(ctx, fmt.Sprintf("/bookings/%d", id), &booking); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (h *httpAPIClient) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	var created models.Booking
	if err := h.send(ctx, resty.MethodPost, "/bookings", booking, &created); err != nil {
		return models.Booking{}, err
	}
	return created, nil
}

func (h *httpAPIClient) DeleteBooking(ctx context.Context, id int64) error {
	return h.send(ctx, resty.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil)
}

// get performs an authenticated GET and decodes the response body into out.
func (h *httpAPIClient) get(ctx context.Context, path string, out any) error {
	resp, err := h.authedRequest(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// send performs an authenticated mutating request. A nil out skips response
// decoding (DELETE answers 204 with no body).
func (h *httpAPIClient) send(ctx context.Context, method, path string, body, out any) error {
	req := h.authedRequest(ctx).SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if out != nil {
		if err = json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func (h *httpAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
