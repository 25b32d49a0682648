package utils

import (
	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/google/uuid"
)

func GenerateID() string {
	id := uuid.New().String()
	if config.Logger != nil {
		config.Logger.Debugw("生成新记录ID", "id", id)
	}
	return id
}
