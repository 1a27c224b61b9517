package wordreference

import (
	"bytes"
	"context"
	"coniugo-backend/lib/telemetry"
	"fmt"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	strict  bool
}

type ClientOptions struct {
	// BaseUrl overrides DefaultBaseUrl, mainly for tests.
	BaseUrl string
	// Timeout applies per fetch attempt, defaults to 20s.
	Timeout time.Duration
	// Strict makes the scrape fail when the page structure deviates
	// from the expected schema instead of logging the deviations.
	Strict bool
	// SkipCloudflareBypass leaves the default http transport in place.
	SkipCloudflareBypass bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	rawUrl := opts.BaseUrl
	if rawUrl == "" {
		rawUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 20
	}

	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	// two attempts total, the n-th retry waits n seconds
	client.SetRetryCount(1)
	client.SetRetryWaitTime(time.Second)
	client.SetRetryMaxWaitTime(time.Second * 2)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return err != nil || res.IsError()
	})
	if !opts.SkipCloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	telemetry.InstrumentResty(client, "scrapers/wordreference/http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
		strict:  opts.Strict,
	}, nil
}

func (c *Client) conjugationUrl(verb string) string {
	link := *c.baseUrl
	query := link.Query()
	query.Set("v", verb)
	link.RawQuery = query.Encode()
	return link.String()
}

func (c *Client) fetchDocument(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, fmt.Errorf("fetch conjugation page: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch conjugation page: status %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse conjugation page: %w", err)
	}
	return doc, nil
}
