package worker

import (
	"context"
	"log"
)

// PostView is emitted by the blog handler whenever a post is fetched by slug.
type PostView struct {
	PostID string
}

type ViewCounter interface {
	IncrementViewCount(ctx context.Context, id string) error
}

// ViewCountWorker drains view events and bumps the stored counter, keeping
// the read path free of the extra write.
type ViewCountWorker struct {
	Ch   <-chan PostView
	repo ViewCounter
}

func NewViewCountWorker(ch <-chan PostView, repo ViewCounter) *ViewCountWorker {
	return &ViewCountWorker{Ch: ch, repo: repo}
}

func (w *ViewCountWorker) Run(ctx context.Context) {
	log.Println("view count worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("view count worker stopped")
			return
		case ev := <-w.Ch:
			if err := w.repo.IncrementViewCount(ctx, ev.PostID); err != nil {
				log.Printf("view count update failed: post=%s err=%v\n", ev.PostID, err)
			}
		}
	}
}
