package feed

import (
	"fmt"
	"net/http"
)

// TransportError 连接/TLS 层面的失败
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError 响应状态不是 200，Body 保留原始响应便于排查上游变化
type HTTPStatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	method := e.Method
	if method == "" {
		method = http.MethodGet
	}
	return fmt.Sprintf("%s %s returned %d %s: %s", method, e.URL, e.Code, http.StatusText(e.Code), e.Body)
}

// URLParseError 链接无法解析为绝对 URL
type URLParseError struct {
	Field string
	Value string
	Err   error
}

func (e *URLParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to parse %s %q as an absolute URL", e.Field, e.Value)
	}
	return fmt.Sprintf("unable to parse %s %q as an absolute URL: %v", e.Field, e.Value, e.Err)
}

func (e *URLParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError 页面中缺少预期的节点或属性
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("unable to find %s in listing item", e.Field)
}
