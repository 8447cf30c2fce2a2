package infrastructure

import (
	"path"
	"strings"

	"github.com/DRSN-tech/home-store/pkg/e"
)

// GetMIMEFromKey возвращает MIME-тип изображения по расширению ключа объекта.
// Поддерживает jpeg, jpg, png, webp. Для остальных возвращает e.ErrUnsupportedMediaType.
func GetMIMEFromKey(key string) (string, error) {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpeg", ".jpg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".webp":
		return "image/webp", nil
	default:
		return "application/octet-stream", e.ErrUnsupportedMediaType
	}
}
