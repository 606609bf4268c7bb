package storage

import (
	"testing"
	"time"

	"trendcloud/internal/cloud"
	"trendcloud/internal/trend"
)

func testDataset() trend.Dataset {
	volume := 10
	return trend.Dataset{
		DisplayName: "Oslo",
		Language:    "en",
		Trends:      []trend.Trend{{Word: "#test", TweetVolume: &volume, Type: trend.TypeHashtag}},
	}
}

func TestCloudStore_PutGet(t *testing.T) {
	s := NewCloudStore(time.Minute)
	words := cloud.BuildWords(testDataset().Trends, cloud.WordOptions{})
	entry := s.Put(testDataset(), words, nil)

	if entry.ID == "" {
		t.Fatal("entry ID is empty")
	}
	got, ok := s.Get(entry.ID)
	if !ok {
		t.Fatal("Get returned false for fresh entry")
	}
	if got.Dataset.DisplayName != "Oslo" || len(got.Words) != 1 {
		t.Errorf("entry = %+v", got)
	}

	if _, ok := s.Get("nonexistent"); ok {
		t.Error("Get should miss for unknown ID")
	}
}

func TestCloudStore_Expiry(t *testing.T) {
	s := NewCloudStore(10 * time.Millisecond)
	entry := s.Put(testDataset(), nil, nil)

	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get(entry.ID); ok {
		t.Error("expired entry still returned")
	}

	if dropped := s.Sweep(time.Now()); dropped != 1 {
		t.Errorf("Sweep dropped %d, want 1", dropped)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after sweep, want 0", s.Len())
	}
}

func TestCloudStore_SweepKeepsFresh(t *testing.T) {
	s := NewCloudStore(time.Hour)
	s.Put(testDataset(), nil, nil)

	if dropped := s.Sweep(time.Now()); dropped != 0 {
		t.Errorf("Sweep dropped %d fresh entries", dropped)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}
