// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package fio

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client makes requests to a FIO node's REST API and, optionally, to a
// registration server that registers FIO addresses on behalf of users.
// Client embeds a resty.Client; use it to configure TLS, proxies or headers.
type Client struct {
	NodeServer         string
	RegistrationServer string

	// Timeout bounds every request. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration

	DebugRequest bool

	*resty.Client
}

// Defaults for the FIO node endpoint.
const (
	NodeDefault = "http://localhost:8889"
)

// NewClient returns a pointer to a Client initialized with the default
// localhost node endpoint and a 15 second timeout.
func NewClient() *Client {
	c := &Client{NodeServer: NodeDefault, Timeout: 15 * time.Second}
	c.Client = resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	c.Client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.DebugRequest {
			fmt.Printf("fio: ==> %v %v %+v\n", req.Method, req.URL, req.Body)
		}
		return nil
	})
	c.Client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		if c.DebugRequest {
			fmt.Printf("fio: <== %v %v [%v] (%v)\n",
				res.Request.Method, res.Request.URL,
				res.StatusCode(), res.Time())
		}
		return nil
	})
	return c
}

// NodeRequest makes a request to the node's v1 API. The path is relative to
// /v1/, i.e. "chain/get_info".
func (c *Client) NodeRequest(ctx context.Context,
	path string, params, result interface{}) error {
	return c.request(ctx, c.NodeServer+"/v1/"+path, params, result)
}

// RegistrationRequest makes a request to the registration server.
func (c *Client) RegistrationRequest(ctx context.Context,
	path string, params, result interface{}) error {
	if len(c.RegistrationServer) == 0 {
		return fmt.Errorf("no registration server configured")
	}
	return c.request(ctx, c.RegistrationServer+"/"+path, params, result)
}

func (c *Client) request(ctx context.Context,
	url string, params, result interface{}) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	if params == nil {
		params = struct{}{}
	}
	apiErr := new(APIError)
	req := c.R().SetContext(ctx).SetBody(params).SetError(apiErr)
	if result != nil {
		req.SetResult(result)
	}
	res, err := req.Post(url)
	if err != nil {
		return err
	}
	if res.IsError() {
		apiErr.StatusCode = res.StatusCode()
		return apiErr
	}
	return nil
}
