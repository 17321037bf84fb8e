package seed

import (
	"context"
	"fmt"
	"os"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	jsoniter "github.com/json-iterator/go"
)

// Snapshot is everything needed to start the stores.
type Snapshot struct {
	Users []models.User       `json:"users"`
	Posts []models.Post       `json:"posts"`
	Edges []models.FollowEdge `json:"edges"`
}

// Loader hides where the initial state comes from, fake data, a file or a real backend.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

type FileLoader struct {
	Path string
}

func (v FileLoader) Load(_ context.Context) (Snapshot, error) {
	var snapshot Snapshot
	raw, err := os.ReadFile(v.Path)
	if err != nil {
		return snapshot, fmt.Errorf("unable to read seed file: %v", err)
	}
	if err := jsoniter.Unmarshal(raw, &snapshot); err != nil {
		return snapshot, fmt.Errorf("unable to decode seed file: %v", err)
	}
	return snapshot, nil
}

// StaticLoader serves a snapshot that is already in memory.
type StaticLoader struct {
	Snapshot Snapshot
}

func (v StaticLoader) Load(_ context.Context) (Snapshot, error) {
	return v.Snapshot, nil
}
