package service

import (
	"encoding/json"
	"fmt"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/messaging"
)

// ExportTopic is the queue the export worker listens on.
const ExportTopic = "export:playlists"

// ExportService enqueues playlist export requests. Ownership is verified by the
// caller before a request is published.
type ExportService struct {
	publisher messaging.Publisher
}

func NewExportService(publisher messaging.Publisher) *ExportService {
	return &ExportService{publisher: publisher}
}

type ExportRequest struct {
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}

func (s *ExportService) RequestExport(playlistID, targetEmail string) error {
	payload, err := json.Marshal(ExportRequest{
		PlaylistID:  playlistID,
		TargetEmail: targetEmail,
	})
	if err != nil {
		return fmt.Errorf("encode export request: %w", err)
	}

	if err := s.publisher.Publish(ExportTopic, payload); err != nil {
		return fmt.Errorf("publish export request: %w", err)
	}

	return nil
}
