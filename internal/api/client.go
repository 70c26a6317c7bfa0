// Package api fetches the read-only demo collections: jsonplaceholder
// to-dos and users, restcountries, and the cat fact services.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/prepkit/internal/config"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/model"
)

// ErrNotFound is returned for a 404, e.g. an unknown country name.
var ErrNotFound = errors.New("api: not found")

// StatusError is any other non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetcher is what the challenge programs need from the network.
type Fetcher interface {
	Todos(ctx context.Context, limit int) ([]model.Todo, error)
	Users(ctx context.Context) ([]model.User, error)
	AllCountries(ctx context.Context) ([]model.Country, error)
	CountryByName(ctx context.Context, name string) ([]model.Country, error)
	CatFact(ctx context.Context) (model.CatFact, error)
	CatImage(ctx context.Context, words string) (model.CatImage, error)
}

type Client struct {
	http      *http.Client
	endpoints config.APIConfig
	log       *slog.Logger
}

func NewClient(endpoints config.APIConfig, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if endpoints.Timeout <= 0 {
		endpoints.Timeout = 10 * time.Second
	}
	return &Client{http: httpClient, endpoints: endpoints, log: logging.Component(log, "api")}
}

func (c *Client) Todos(ctx context.Context, limit int) ([]model.Todo, error) {
	u, err := url.Parse(c.endpoints.TodosURL)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		q := u.Query()
		q.Set("_limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
	}
	var out []model.Todo
	return out, c.getJSON(ctx, u.String(), &out)
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	return out, c.getJSON(ctx, c.endpoints.UsersURL, &out)
}

func (c *Client) AllCountries(ctx context.Context) ([]model.Country, error) {
	var out []model.Country
	u := strings.TrimRight(c.endpoints.CountriesURL, "/") + "/all?fields=name,capital,population,flags"
	return out, c.getJSON(ctx, u, &out)
}

func (c *Client) CountryByName(ctx context.Context, name string) ([]model.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	var out []model.Country
	u := strings.TrimRight(c.endpoints.CountriesURL, "/") + "/name/" + url.PathEscape(name)
	return out, c.getJSON(ctx, u, &out)
}

func (c *Client) CatFact(ctx context.Context) (model.CatFact, error) {
	var out model.CatFact
	return out, c.getJSON(ctx, c.endpoints.CatFactURL, &out)
}

// CatImage asks cataas for a picture captioned with words.
func (c *Client) CatImage(ctx context.Context, words string) (model.CatImage, error) {
	var out model.CatImage
	u := strings.TrimRight(c.endpoints.CataasURL, "/") + "/cat/says/" + url.PathEscape(words) + "?size=50&json=true"
	if err := c.getJSON(ctx, u, &out); err != nil {
		return out, err
	}
	if out.URL != "" && strings.HasPrefix(out.URL, "/") {
		out.URL = strings.TrimRight(c.endpoints.CataasURL, "/") + out.URL
	}
	return out, nil
}

// FirstWords returns up to n space-separated words of s.
func FirstWords(s string, n int) string {
	parts := strings.SplitN(s, " ", n+1)
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, " ")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.endpoints.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "url", rawURL, "error", err)
		return fmt.Errorf("api: get %s: %w", rawURL, err)
	}
	defer res.Body.Close()
	c.log.Debug("request done", "url", rawURL, "status", res.StatusCode, "took", time.Since(start))

	switch {
	case res.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, res.Body)
		return ErrNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		_, _ = io.Copy(io.Discard, res.Body)
		return &StatusError{URL: rawURL, StatusCode: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("api: decode %s: %w", rawURL, err)
	}
	return nil
}
