//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/quickbite-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type menuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestQuickBiteWebContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleMenuItem()
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problem := func(kind, title string, status int) matchers.Map {
		return matchers.Map{
			"type":   matchers.S(kind),
			"title":  matchers.S(title),
			"status": matchers.Like(status),
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateMenuSeeded).
		UponReceiving("an anonymous request for the menu").
		WithRequest("GET", "/menu").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(matchers.Map{
				"id":          matchers.Like(example["id"]),
				"name":        matchers.Like(example["name"]),
				"description": matchers.Like(example["description"]),
				"price":       matchers.Like(example["price"]),
			}, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateStudentExists).
		UponReceiving("a student login").
		WithRequest("POST", "/auth/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]string{"username": pacttest.StudentUsername, "password": pacttest.StudentPassword})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":       matchers.Like("user-1"),
				"username": matchers.S(pacttest.StudentUsername),
				"role":     matchers.S("STUDENT"),
				"token":    matchers.Like("session-token"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateMenuSeeded).
		UponReceiving("an anonymous request for all orders").
		WithRequest("GET", "/order/all").
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(problem("/problems/unauthorized", "Unauthorized", http.StatusUnauthorized))
		})

	pact.AddInteraction().
		Given(pacttest.StateAdminSession).
		UponReceiving("an admin approving a missing order").
		WithRequest("PUT", "/order/"+pacttest.MissingOrderID+"/status", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.Like("Bearer "+pacttest.ExampleToken))
			b.Query("status", matchers.S("APPROVED"))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(problem("/problems/not-found", "Resource Not Found", http.StatusNotFound))
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newQuickBiteClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		menu, err := client.Menu(ctx)
		if err != nil {
			return fmt.Errorf("list menu: %w", err)
		}
		if len(menu) == 0 || menu[0].ID == "" {
			return fmt.Errorf("expected at least one menu item, got %+v", menu)
		}

		signedIn, err := client.Login(ctx, pacttest.StudentUsername, pacttest.StudentPassword)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if signedIn.Role != "STUDENT" || signedIn.Token == "" {
			return fmt.Errorf("unexpected login response %+v", signedIn)
		}

		var apiErr apiError
		if err := client.AllOrders(ctx, ""); !errors.As(err, &apiErr) || apiErr.status != http.StatusUnauthorized {
			return fmt.Errorf("expected 401 for anonymous order listing, got %v", err)
		}
		if err := client.UpdateStatus(ctx, pacttest.ExampleToken, pacttest.MissingOrderID, "APPROVED"); !errors.As(err, &apiErr) || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for missing order, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type quickBiteClient struct {
	baseURL    string
	httpClient *http.Client
}

func newQuickBiteClient(config pactconsumer.MockServerConfig) *quickBiteClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &quickBiteClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *quickBiteClient) Menu(ctx context.Context) ([]menuItem, error) {
	var items []menuItem
	err := c.do(ctx, http.MethodGet, "/menu", "", nil, &items)
	return items, err
}

func (c *quickBiteClient) Login(ctx context.Context, username, password string) (*session, error) {
	var s session
	err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": password}, &s)
	return &s, err
}

func (c *quickBiteClient) AllOrders(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/order/all", token, nil, nil)
}

func (c *quickBiteClient) UpdateStatus(ctx context.Context, token, id, status string) error {
	return c.do(ctx, http.MethodPut, "/order/"+id+"/status?status="+status, token, nil, nil)
}

func (c *quickBiteClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, title: problem.Title, detail: problem.Detail}
}
