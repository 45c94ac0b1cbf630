package dto

// PublishIngestDocumentMessage is the payload queued for asynchronous
// document ingestion.
type PublishIngestDocumentMessage struct {
	DocumentId string `json:"document_id"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

type IngestUnitReport struct {
	DocumentId    string `json:"document_id"`
	ChunksCreated int    `json:"chunks_created"`
	ChunksSkipped int    `json:"chunks_skipped"`
	Error         string `json:"error,omitempty"`
}

type IngestReport struct {
	Documents     int                `json:"documents"`
	ChunksCreated int                `json:"chunks_created"`
	ChunksSkipped int                `json:"chunks_skipped"`
	Units         []IngestUnitReport `json:"units"`
}

type ReingestResponse struct {
	QueuedDocuments int `json:"queued_documents"`
}

type CorpusStatusResponse struct {
	ChunkCount int64 `json:"chunk_count"`
}
