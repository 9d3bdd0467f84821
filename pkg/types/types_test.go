package types

import "testing"

func TestGameStateString(t *testing.T) {
	tests := []struct {
		state GameState
		want  string
	}{
		{GameStateIdle, "IDLE"},
		{GameStateThinking, "THINKING"},
		{GameStateAction, "ACTION"},
		{GameStateCelebrate, "CELEBRATE"},
		{GameStateFlashback, "FLASHBACK"},
		{GameStateEnded, "ENDED"},
		{GameState(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("GameState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestGameStateAcceptsFeedback(t *testing.T) {
	rejected := map[GameState]bool{GameStateAction: true, GameStateFlashback: true}
	for s := GameStateIdle; s <= GameStateEnded; s++ {
		if got := s.AcceptsFeedback(); got == rejected[s] {
			t.Errorf("%s.AcceptsFeedback() = %v", s, got)
		}
	}
}

func TestSideDirection(t *testing.T) {
	if SideLeft.Direction() != DirLeft || SideRight.Direction() != DirRight {
		t.Error("Side.Direction mapping is wrong")
	}
	if DirLeft.Opposite() != DirRight || DirRight.Opposite() != DirLeft {
		t.Error("Direction.Opposite mapping is wrong")
	}
	if DirCenter.Opposite() != DirCenter {
		t.Error("DirCenter.Opposite should stay center")
	}
}

func TestParseSide(t *testing.T) {
	if s, err := ParseSide("left"); err != nil || s != SideLeft {
		t.Errorf("ParseSide(left) = %v, %v", s, err)
	}
	if s, err := ParseSide("r"); err != nil || s != SideRight {
		t.Errorf("ParseSide(r) = %v, %v", s, err)
	}
	if _, err := ParseSide("up"); err == nil {
		t.Error("ParseSide(up) should fail")
	}
}

func TestPrizeMappings(t *testing.T) {
	if PrizeForSide(SideLeft) != PrizeRadish || PrizeForSide(SideRight) != PrizeTissue {
		t.Error("PrizeForSide mapping is wrong")
	}
	if PrizeForDirection(DirLeft) != PrizeRadish || PrizeForDirection(DirRight) != PrizeTissue {
		t.Error("PrizeForDirection mapping is wrong")
	}
	if PrizeRadish.Other() != PrizeTissue || PrizeTissue.Other() != PrizeRadish {
		t.Error("Prize.Other mapping is wrong")
	}
}

func TestPlacement(t *testing.T) {
	p := Placement{Left: PrizeTissue, Right: PrizeRadish}
	if !p.Valid() {
		t.Error("tissue/radish placement should be valid")
	}
	if p.At(DirLeft) != PrizeTissue || p.At(DirRight) != PrizeRadish {
		t.Error("Placement.At mapping is wrong")
	}
	if (Placement{Left: PrizeRadish, Right: PrizeRadish}).Valid() {
		t.Error("radish/radish placement should be invalid")
	}
}

func TestParsePolicyAndRule(t *testing.T) {
	tests := []struct {
		in      string
		want    TargetPolicy
		wantErr bool
	}{
		{"", PolicyRandom, false},
		{"random", PolicyRandom, false},
		{"opposite", PolicyOpposite, false},
		{"mirror", PolicyRandom, true},
	}
	for _, tt := range tests {
		got, err := ParseTargetPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTargetPolicy(%q) = %v, %v", tt.in, got, err)
		}
	}

	if r, err := ParseSuccessRule("placement"); err != nil || r != RulePlacement {
		t.Errorf("ParseSuccessRule(placement) = %v, %v", r, err)
	}
	if _, err := ParseSuccessRule("visual"); err == nil {
		t.Error("ParseSuccessRule(visual) should fail")
	}
}
