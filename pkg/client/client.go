package client

import (
	"time"

	"github.com/RicardoYam/Meet/pkg/config"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// HeaderRequestID carries a per-request id that shows up in client and server logs
const HeaderRequestID = "X-Request-ID"

// UserAgent is sent with every request
const UserAgent = "Meet-CLI/0.1.0"

var httpClient *resty.Client

// New builds a resty client for the given API root
func New(baseURL string, timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", UserAgent)
	c.SetHeader("Accept", "application/json")
	c.SetJSONMarshaler(jsoniter.ConfigCompatibleWithStandardLibrary.Marshal)
	c.SetJSONUnmarshaler(jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal)

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.Header.Set(HeaderRequestID, uuid.NewString())
		}
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL, "request_id", req.Header.Get(HeaderRequestID))
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response",
			"status", resp.StatusCode(),
			"url", resp.Request.URL,
			"request_id", resp.Request.Header.Get(HeaderRequestID),
			"duration", resp.Time())
		return nil
	})

	return c
}

// Init initializes the shared HTTP client from config
func Init() {
	baseURL := config.GetString(config.KeyBaseURL)
	timeout := time.Duration(config.GetInt(config.KeyTimeout)) * time.Second
	httpClient = New(baseURL, timeout)
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// Reset drops the shared client so the next GetClient rereads config
func Reset() {
	httpClient = nil
}
