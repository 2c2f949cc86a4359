package view

import (
	"testing"

	"github.com/whalegame/whalegame/internal/news"
)

func TestViewBoundsAndOrder(t *testing.T) {
	v := NewNewsView(3)

	for i := 1; i <= 5; i++ {
		v.Apply(NewsEvent{Item: &news.Item{ID: news.NewsID(i)}})
	}

	items := v.LatestNews(10)
	if len(items) != 3 {
		t.Fatalf("expected 3 retained items, got %d", len(items))
	}
	// oldest first, newest last
	if items[0].ID != 3 || items[2].ID != 5 {
		t.Errorf("unexpected order: %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestViewSeparatesTapes(t *testing.T) {
	v := NewNewsView(10)
	v.Apply(NewsEvent{Item: &news.Item{ID: 1}})
	v.Apply(NewsEvent{Feed: &news.FeedItem{ID: 2, Kind: news.FeedAlert}})

	if n := len(v.LatestNews(10)); n != 1 {
		t.Errorf("expected 1 news item, got %d", n)
	}
	feed := v.LatestFeed(10)
	if len(feed) != 1 {
		t.Fatalf("expected 1 feed post, got %d", len(feed))
	}
	if feed[0].Kind != news.FeedAlert {
		t.Errorf("expected ALERT kind, got %v", feed[0].Kind)
	}
}
