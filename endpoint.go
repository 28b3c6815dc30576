package nls

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"sort"
	"strings"
	"time"
)

const EndpointDefaultTimeout = 30

type Endpoint struct {
	Url                string
	Headers            []Header
	AllowedStatusCodes []int
	HttpClient         *http.Client
	Timeout            int
}

type Header struct {
	Name  string
	Value string
}

func NewEndpoint(feed FeedConfig) *Endpoint {
	endpoint := new(Endpoint)
	endpoint.Url = feed.Uri
	endpoint.AllowedStatusCodes = feed.AllowedStatusCodes

	endpoint.Timeout = feed.Timeout
	if endpoint.Timeout <= 0 {
		endpoint.Timeout = EndpointDefaultTimeout
	}

	// sorted so requests are reproducible
	names := make([]string, 0, len(feed.Headers))
	for name := range feed.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	endpoint.Headers = make([]Header, 0, len(names))
	for _, name := range names {
		endpoint.Headers = append(endpoint.Headers, Header{Name: name, Value: feed.Headers[name]})
	}

	return endpoint
}

func (endpoint *Endpoint) Fetch(ctx context.Context, name string) ([]byte, error) {
	client := endpoint.HttpClient
	if client == nil {
		client = &http.Client{
			Timeout: time.Duration(endpoint.Timeout) * time.Second,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.Url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept-Encoding", "gzip")
	for _, header := range endpoint.Headers {
		req.Header.Add(header.Name, header.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		Log.Debugf("WARNING: Error during fetch: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if strings.ToLower(resp.Header.Get("Content-Encoding")) == "gzip" {
		Log.Debug("Decompressing gzipped content...")

		gzReader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		body, err = ioutil.ReadAll(gzReader)
		if err != nil {
			return nil, err
		}
	}

	Log.Debugf("fetched %d bytes with status code %d from %s", len(body), resp.StatusCode, endpoint.Url, FeedFields(name))

	if resp.StatusCode != http.StatusOK {
		allowed := false
		for _, code := range endpoint.AllowedStatusCodes {
			if resp.StatusCode == code {
				allowed = true
			}
		}

		if !allowed {
			preview := body
			if len(preview) > 128 {
				preview = preview[:128]
			}
			Log.Warnf("Status code: %d, %s", resp.StatusCode, string(preview), FeedFields(name))
			return body, fmt.Errorf("Status code: %d", resp.StatusCode)
		}
	}

	return body, nil
}
