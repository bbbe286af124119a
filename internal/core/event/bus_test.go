package event

import "testing"

func TestBusDeliversNextFrame(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(s Sound) { got = append(got, s.Name) })

	Emit(b, Sound{Name: SoundBallReflect})
	Emit(b, Sound{Name: SoundMineReflect})
	if b.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", b.Pending())
	}
	b.DispatchAll() // front still empty
	if len(got) != 0 {
		t.Fatalf("delivered before swap: %v", got)
	}

	b.Flush()
	if len(got) != 2 || got[0] != SoundBallReflect || got[1] != SoundMineReflect {
		t.Fatalf("got %v", got)
	}

	got = got[:0]
	b.Flush() // nothing emitted since
	if len(got) != 0 {
		t.Fatalf("events delivered twice: %v", got)
	}
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	deaths := 0
	sounds := 0
	Subscribe(b, func(PlayerDied) { deaths++ })
	Subscribe(b, func(Sound) { sounds++ })

	Emit(b, PlayerDied{LivesLeft: 4})
	b.Flush()
	if deaths != 1 || sounds != 0 {
		t.Fatalf("deaths=%d sounds=%d", deaths, sounds)
	}
}
