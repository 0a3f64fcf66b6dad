package api_test

import (
	"strconv"
	"time"

	"github.com/RicardoYam/Meet/pkg/client"
	"github.com/go-resty/resty/v2"
)

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func clientFor(baseURL string) *resty.Client {
	return client.New(baseURL, 2*time.Second)
}
