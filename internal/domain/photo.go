package domain

// Photo описывает фотографию лота, загружаемую в объектное хранилище.
type Photo struct {
	ID        string
	Bucket    string
	ObjectKey string
	Bytes     []byte
	Size      int64
	MimeType  string
}

func NewPhoto(id, bucket, objectKey string, data []byte, size int64, mimeType string) *Photo {
	return &Photo{
		ID:        id,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Bytes:     data,
		Size:      size,
		MimeType:  mimeType,
	}
}
