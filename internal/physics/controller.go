package physics

// Input is the player's control state for one frame. Jump is set only on the
// frame the key goes down.
type Input struct {
	Left, Right, Jump bool
}

const (
	jumpSpeed     = 250.0
	steerBase     = 5.0
	steerReverse  = 20.0
	reverseFactor = 10.0
	maxRunSpeed   = 300.0
)

// Steer applies one frame of input to the body's velocity. Reversing
// direction brakes harder than accelerating, and horizontal speed is
// clamped once it exceeds maxRunSpeed.
func (k *Kinematic) Steer(in Input) {
	if in.Jump {
		k.Vel.Y = jumpSpeed
	}
	if in.Left {
		switch {
		case k.Vel.X > steerReverse:
			k.Vel.X -= steerBase * reverseFactor
		case k.Vel.X < -maxRunSpeed:
			k.Vel.X = -maxRunSpeed
		default:
			k.Vel.X -= steerBase
		}
	}
	if in.Right {
		switch {
		case k.Vel.X < steerReverse:
			k.Vel.X += steerBase * reverseFactor
		case k.Vel.X > maxRunSpeed:
			k.Vel.X = maxRunSpeed
		default:
			k.Vel.X += steerBase
		}
	}
}
