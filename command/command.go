// Package command holds the plain-text command vocabulary understood by the
// tank firmware.
//
// A command is a single token optionally followed by space separated
// arguments, for example "LED_COLOR 255 0 128". The firmware parses tokens
// itself; there is no framing beyond one command per message (WebSocket) or
// per line (serial).
package command

import (
	"fmt"
	"strings"
)

// Engines.
const (
	EngineSpeed = "SPEED"
	LeftTrack   = "LEFT_TRACK"
	RightTrack  = "RIGHT_TRACK"
	Stop        = "STOP"
)

// LED strip.
const (
	LEDCustomColor       = "LED_COLOR"
	LEDBrightness        = "LED_BRIGHTNESS"
	LEDAnimationInterval = "LED_INTERVAL"
	LEDOn                = "LED_ON"
	LEDOff               = "LED_OFF"
)

// MP3 player.
const (
	MP3Volume = "MP3_VOLUME"
	MP3Play   = "MP3_PLAY"
	MP3Stop   = "MP3_STOP"
)

// Arm servos. Plus/minus move a servo toward its max/min angle until stopped.
const (
	ServoPlus  = "SERVO_PLUS"
	ServoMinus = "SERVO_MINUS"
	ServoStop  = "SERVO_STOP"
	ServoAngle = "SERVO_ANGLE"
)

// Servo names known by the arm controller.
const (
	ServoBase     = "base"
	ServoShoulder = "shoulder"
	ServoElbow    = "elbow"
	ServoGripper  = "gripper"
)

// Command is one outbound message.
type Command string

// New joins token and args with single spaces.
func New(token string, args ...any) Command {
	if len(args) == 0 {
		return Command(token)
	}
	var b strings.Builder
	b.WriteString(token)
	for _, a := range args {
		b.WriteByte(' ')
		fmt.Fprint(&b, a)
	}
	return Command(b.String())
}

// Token returns the leading token.
func (c Command) Token() string {
	tok, _, _ := strings.Cut(string(c), " ")
	return tok
}

// Args returns the arguments following the token.
func (c Command) Args() []string {
	_, rest, ok := strings.Cut(string(c), " ")
	if !ok {
		return nil
	}
	return strings.Fields(rest)
}

func (c Command) String() string { return string(c) }

func Speed(v int) Command { return New(EngineSpeed, v) }

func Volume(v int) Command { return New(MP3Volume, v) }

func Brightness(v int) Command { return New(LEDBrightness, v) }

func AnimationInterval(ms int) Command { return New(LEDAnimationInterval, ms) }

// RGB builds a custom LED color command.
func RGB(r, g, b uint8) Command { return New(LEDCustomColor, r, g, b) }

// Color builds a custom LED color command from a "#rrggbb" value.
func Color(hex string) (Command, error) {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return "", err
	}
	return RGB(r, g, b), nil
}

// Servo builds a plus/minus/stop command for the named servo.
func Servo(token, name string) Command { return New(token, name) }
