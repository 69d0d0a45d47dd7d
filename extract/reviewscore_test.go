package extract

import "testing"

func TestParseCategoryLines(t *testing.T) {
	lines := []string{
		"Cleanliness\n4.9",
		"Accuracy\n4.8",
		"Check-in\n5.0",
		"Communication\n4.7",
		"Location\n4.6",
		"Value\n4.5",
		"not a category\n3.0",
	}
	cr := ParseCategoryLines(lines)
	if cr.Cleanliness != 4.9 || cr.Accuracy != 4.8 || cr.CheckIn != 5.0 ||
		cr.Communication != 4.7 || cr.Location != 4.6 || cr.Value != 4.5 {
		t.Errorf("ParseCategoryLines = %+v", cr)
	}
}

func TestParseCategoryLines_Empty(t *testing.T) {
	cr := ParseCategoryLines(nil)
	if cr.Cleanliness != 0 || cr.Value != 0 {
		t.Errorf("empty input should yield zero ratings: %+v", cr)
	}
}
