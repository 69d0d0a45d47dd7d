package extract

import (
	"reflect"
	"testing"
)

func TestFilterImageURLs_AvatarsExcluded(t *testing.T) {
	raw := []string{
		"https://a0.muscache.com/im/pictures/hosting/123/original.jpeg",
		"https://a0.muscache.com/im/pictures/user/profile_pic-456.jpg",
		"https://a0.muscache.com/im/users/789/profile.jpg",
		"https://a0.muscache.com/pictures/miso/photo-1.jpg",
	}
	got := FilterImageURLs(raw)
	want := []string{
		"https://a0.muscache.com/im/pictures/hosting/123/original.jpeg",
		"https://a0.muscache.com/pictures/miso/photo-1.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterImageURLs = %v, want %v", got, want)
	}
}

func TestFilterImageURLs_DedupPreservesOrder(t *testing.T) {
	raw := []string{
		"https://a0.muscache.com/im/pictures/b.jpg",
		"https://a0.muscache.com/im/pictures/a.jpg",
		"https://a0.muscache.com/im/pictures/b.jpg",
	}
	got := FilterImageURLs(raw)
	want := []string{
		"https://a0.muscache.com/im/pictures/b.jpg",
		"https://a0.muscache.com/im/pictures/a.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterImageURLs = %v, want %v", got, want)
	}
}

func TestFilterImageURLs_OffCDNDropped(t *testing.T) {
	got := FilterImageURLs([]string{
		"https://example.com/banner.png",
		"",
	})
	if len(got) != 0 {
		t.Errorf("non-listing URLs should be dropped, got %v", got)
	}
}
