package handler

import (
	"encoding/base64"
	"fmt"

	"github.com/cuongbtq/job-assistant/internal/api/storage"
)

func DecodeJobCursor(cursorStr string) (*storage.JobCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	if len(decoded) == 0 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	return &storage.JobCursor{
		JobID: string(decoded),
	}, nil
}

func EncodeJobCursor(cursor *storage.JobCursor) string {
	return base64.URLEncoding.EncodeToString([]byte(cursor.JobID))
}
