package usecase

import "context"

type PhotosInfra interface {
	UploadPhotos(ctx context.Context, req *UploadPhotosReq) (*UploadPhotosRes, error)
	CleanupPhotos(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
