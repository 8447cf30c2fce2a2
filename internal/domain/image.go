package domain

// Image описывает изображение товара, хранящееся в S3
type Image struct {
	Bucket      string
	ObjectKey   string
	ContentType string // Example: "image/jpeg"
}

func NewImage(bucket string, objectKey string, contentType string) *Image {
	return &Image{
		Bucket:      bucket,
		ObjectKey:   objectKey,
		ContentType: contentType,
	}
}
