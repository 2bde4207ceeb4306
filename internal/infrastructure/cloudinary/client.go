package cloudinary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/easayliu/media-gallery/internal/infrastructure/ratelimit"
	"github.com/easayliu/media-gallery/pkg/logger"
	"github.com/tidwall/gjson"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://api.cloudinary.com"
	defaultTimeout = 30 * time.Second
	apiVersion     = "v1_1"
)

// Options 客户端配置
type Options struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	QPS       int
	Timeout   time.Duration
}

// Client Cloudinary Admin API 只读客户端
type Client struct {
	cloudName   string
	http        *resty.Client
	rateLimiter *ratelimit.RateLimiter
}

// NewClient 创建客户端
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetBasicAuth(opts.APIKey, opts.APISecret).
		SetHeader("Accept", "application/json")

	logger.Debug("Cloudinary client created",
		"base_url", baseURL,
		"cloud_name", opts.CloudName,
		"api_key", opts.APIKey,
		"qps", opts.QPS)

	return &Client{
		cloudName:   opts.CloudName,
		http:        httpClient,
		rateLimiter: ratelimit.NewRateLimiter(opts.QPS),
	}
}

// Close 释放底层连接
func (c *Client) Close() error {
	return c.http.Close()
}

// QPS 当前QPS限制,0表示不限制
func (c *Client) QPS() int {
	return c.rateLimiter.GetQPS()
}

// ListSubfolders 列出root下的子文件夹
func (c *Client) ListSubfolders(ctx context.Context, root string) (*FoldersResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var result FoldersResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(c.endpoint("folders", escapePath(root)))
	if err != nil {
		return nil, fmt.Errorf("failed to list sub folders of %s: %w", root, err)
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp, "list sub folders")
	}
	return &result, nil
}

// ListResources 分页列出图片资源
func (c *Client) ListResources(ctx context.Context, req ResourcesRequest) (*ResourcesResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	r := c.http.R().SetContext(ctx)
	if req.MaxResults > 0 {
		r.SetQueryParam("max_results", strconv.Itoa(req.MaxResults))
	}
	if req.NextCursor != "" {
		r.SetQueryParam("next_cursor", req.NextCursor)
	}
	// 按前缀过滤需要在路径里带上投递类型
	path := c.endpoint("resources", "image")
	if req.Prefix != "" {
		path = c.endpoint("resources", "image", "upload")
		r.SetQueryParam("prefix", req.Prefix)
	}

	var result ResourcesResponse
	resp, err := r.SetResult(&result).Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp, "list resources")
	}
	return &result, nil
}

func (c *Client) endpoint(parts ...string) string {
	return "/" + apiVersion + "/" + url.PathEscape(c.cloudName) + "/" + strings.Join(parts, "/")
}

// escapePath 逐段转义,保留目录分隔符
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// errorFromResponse Cloudinary错误响应格式: {"error":{"message":"..."}}
func (c *Client) errorFromResponse(resp *resty.Response, op string) error {
	message := gjson.Get(resp.String(), "error.message").String()
	if message == "" {
		return fmt.Errorf("cloudinary %s failed with status %d", op, resp.StatusCode())
	}
	return fmt.Errorf("cloudinary %s failed with status %d: %s", op, resp.StatusCode(), message)
}
