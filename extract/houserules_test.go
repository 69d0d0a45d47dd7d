package extract

import (
	"reflect"
	"testing"
)

const sampleRulesText = `House rules
Check-in: 3:00 PM - 9:00 PM
Checkout before 11:00 AM
Self check-in with lockbox
6 guests maximum
No pets
Quiet hours
10:00 PM - 8:00 AM
No parties or events
No commercial photography
No smoking
Additional rules
Remove shoes at the door
Before you leave
Turn things off
Lock up
Return keys
`

func TestParseHouseRules(t *testing.T) {
	hr := ParseHouseRules(sampleRulesText)

	if hr.CheckIn != "3:00 PM - 9:00 PM" {
		t.Errorf("CheckIn = %q", hr.CheckIn)
	}
	if hr.CheckOut != "11:00 AM" {
		t.Errorf("CheckOut = %q", hr.CheckOut)
	}
	if !hr.SelfCheckIn {
		t.Error("SelfCheckIn should be true")
	}
	if hr.MaxGuests != 6 {
		t.Errorf("MaxGuests = %d, want 6", hr.MaxGuests)
	}
	if hr.Pets {
		t.Error("Pets should be false when rules say no pets")
	}
	if hr.QuietHours != "10:00 PM - 8:00 AM" {
		t.Errorf("QuietHours = %q", hr.QuietHours)
	}
	if !hr.NoParties || !hr.NoCommercialPhotography || !hr.NoSmoking {
		t.Errorf("prohibition flags = (%v, %v, %v), want all true",
			hr.NoParties, hr.NoCommercialPhotography, hr.NoSmoking)
	}
	if hr.AdditionalRules != "Remove shoes at the door" {
		t.Errorf("AdditionalRules = %q", hr.AdditionalRules)
	}
	want := []string{"Turn things off", "Lock up", "Return keys"}
	if !reflect.DeepEqual(hr.BeforeYouLeave, want) {
		t.Errorf("BeforeYouLeave = %v, want %v", hr.BeforeYouLeave, want)
	}
}

func TestParseHouseRules_PetsUnmentioned(t *testing.T) {
	hr := ParseHouseRules("Check-in: 4:00 PM\nNo smoking\nNo parties or events")
	if hr.Pets {
		t.Error("Pets should default to false when the rules never mention pets")
	}
}

func TestParseHouseRules_PetsAllowed(t *testing.T) {
	hr := ParseHouseRules("Check-in: 4:00 PM\nPets allowed\nNo smoking")
	if !hr.Pets {
		t.Error("Pets should be true")
	}
}

func TestParseHouseRules_Empty(t *testing.T) {
	hr := ParseHouseRules("")
	if hr.CheckIn != "" || hr.MaxGuests != 0 || hr.NoParties {
		t.Errorf("empty text should parse to zero rules: %+v", hr)
	}
}
