package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffContentType 按文件头识别 MIME 类型，不以任一允许前缀开头时返回 ErrInvalidFile。
// 会消耗 reader 开头的数据，调用方需要自行 Seek 回起点。
func SniffContentType(r io.Reader, allowed ...string) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}

	contentType := mtype.String()
	for _, prefix := range allowed {
		if strings.HasPrefix(contentType, prefix) {
			return contentType, nil
		}
	}
	return contentType, fmt.Errorf("%w: %s", ErrInvalidFile, contentType)
}
