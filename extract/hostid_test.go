package extract

import "testing"

func TestMineHostID_HostKeyBeatsUserKey(t *testing.T) {
	page := `<html><head>
		<script type="application/json">{"userId": "111", "listing": {"hostId": "222"}}</script>
	</head><body></body></html>`
	if got := MineHostID(page); got != "222" {
		t.Errorf("MineHostID = %q, want host-weighted 222", got)
	}
}

func TestMineHostID_NumericValue(t *testing.T) {
	page := `<html><script type="application/json">{"hostId": 31459}</script></html>`
	if got := MineHostID(page); got != "31459" {
		t.Errorf("MineHostID = %q, want 31459", got)
	}
}

func TestMineHostID_LongerIDWinsTie(t *testing.T) {
	page := `<html>
		<script type="application/json">{"hostId": "99"}</script>
		<script type="application/json">{"host_id": "1234567"}</script>
	</html>`
	if got := MineHostID(page); got != "1234567" {
		t.Errorf("MineHostID = %q, want longer id on weight tie", got)
	}
}

func TestMineHostID_RegexFallbackOnBrokenJSON(t *testing.T) {
	page := `<html><script>window.__data = {"primaryHostId": "777", fn: function(){}};</script></html>`
	if got := MineHostID(page); got != "777" {
		t.Errorf("MineHostID = %q, want regex-mined 777", got)
	}
}

func TestMineHostID_NothingFound(t *testing.T) {
	page := `<html><script>console.log("hello")</script><body>text</body></html>`
	if got := MineHostID(page); got != "" {
		t.Errorf("MineHostID = %q, want empty", got)
	}
}

func TestHostLinkIDRe(t *testing.T) {
	tests := []struct {
		href, want string
	}{
		{"https://www.airbnb.com/users/show/12345", "12345"},
		{"https://www.airbnb.com/users/67890?ref=profile", "67890"},
		{"https://www.airbnb.com/rooms/555", ""},
	}
	for _, tt := range tests {
		m := hostLinkIDRe.FindStringSubmatch(tt.href)
		got := ""
		if m != nil {
			got = m[1]
		}
		if got != tt.want {
			t.Errorf("host id of %q = %q, want %q", tt.href, got, tt.want)
		}
	}
}
