package app

import (
	"context"
	"io"
)

type QueryUseCase interface {
	ListProjects(ctx context.Context, req QueryRequest) (*QueryResponse, error)
}

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type ExportUseCase interface {
	Export(ctx context.Context, req ExportRequest, w io.Writer) (*ExportResult, error)
	ExportTemplate(ctx context.Context, w io.Writer) (*ExportResult, error)
}

type ImportUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}
