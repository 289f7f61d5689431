package status

import "testing"

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		code  int
		want  Status
		label string
		tone  Tone
	}{
		{0, Upcoming, "Not Started", ToneUpcoming},
		{1, Live, "First Half", ToneLive},
		{2, Live, "Half Time", ToneLive},
		{3, Live, "Second Half", ToneLive},
		{4, Live, "Extra Time", ToneLive},
		{5, Live, "Penalties", ToneLive},
		{-1, Other, "Full Time", ToneMuted},
		{-14, Other, "Postponed", ToneMuted},
	}
	for _, tc := range tests {
		got := Classify(tc.code)
		if got.Status != tc.want || got.Label != tc.label || got.Tone != tc.tone {
			t.Fatalf("Classify(%d) = %+v, want {%s %s %s}", tc.code, got, tc.want, tc.label, tc.tone)
		}
	}
}

func TestClassify_UnknownFailsSoft(t *testing.T) {
	for _, code := range []int{99, -2, 6, 1 << 20} {
		got := Classify(code)
		if got.Status != Unknown || got.Label != UnknownLabel {
			t.Fatalf("Classify(%d) = %+v, want unknown", code, got)
		}
	}
}

func TestIsLiveIsUpcoming(t *testing.T) {
	if !IsLive(1) || !IsLive(3) {
		t.Fatalf("1 and 3 must be live")
	}
	if IsLive(0) || !IsUpcoming(0) {
		t.Fatalf("0 must be upcoming only")
	}
	if IsLive(99) || IsUpcoming(99) {
		t.Fatalf("unknown code must be neither live nor upcoming")
	}
}

func TestRank_Order(t *testing.T) {
	if !(Rank(Live) < Rank(Upcoming) && Rank(Upcoming) < Rank(Other) && Rank(Other) < Rank(Unknown)) {
		t.Fatalf("rank order broken")
	}
}

func TestFromText(t *testing.T) {
	cases := map[string]Status{
		"IN_PLAY":   Live,
		"paused":    Live,
		" LIVE ":    Live,
		"SCHEDULED": Upcoming,
		"TIMED":     Upcoming,
		"FINISHED":  Other,
		"POSTPONED": Other,
		"whatever":  Unknown,
		"":          Unknown,
	}
	for in, want := range cases {
		if got := Of(FromText(in)); got != want {
			t.Fatalf("FromText(%q) status = %s, want %s", in, got, want)
		}
	}
}
