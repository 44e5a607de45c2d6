package config

import "time"

const (
	// Native frame geometry (pixels). Five 20px rings plus padding for labels
	// and the status bar.
	FrameWidth  = 240
	FrameHeight = 140
	Scale       = 3 // Presentation upscale factor
	OriginX     = FrameWidth / 2
	OriginY     = FrameHeight - 20

	// Template
	RingCount     = 5
	RingStep      = 20 // Pixel radius between rings
	RingLabelStep = 10 // Real-world cm represented by one ring step
	GuideStep     = 30 // Degrees between angle guide lines
	GuideLength   = 104
	OriginRadius  = 3
	StatusBarH    = 20

	// Trail overlay
	HistoryCapacity = 40
	TrailLength     = 100
	BlipRadius      = 3
	BlipScale       = 2 // Pixels per cm
	FadeStep        = 5 // Green lost per age step on trail lines
	BlipFadeStep    = 7 // Red lost per age step on blips
	TrailGreen      = 200
	BlipRed         = 255

	// Reading classification (cm, exclusive bounds)
	MinRange  = 1  // Range map floor
	DetectMin = 2  // Blip floor
	MaxRange  = 50 // Beyond this the sensor sees nothing

	// Sensor sweep domain (degrees)
	MinAngle = 0
	MaxAngle = 180

	// Transport
	DefaultPort    = "/dev/tty.usbmodem101"
	DefaultBaud    = 9600
	ReadBufferSize = 256

	// Demo mode
	DemoStepDeg  = 2
	DemoInterval = 30 * time.Millisecond
	DemoMaxChunk = 11 // Upper bound on bytes per simulated serial read
	DemoNoiseCm  = 2

	// Terminal surface
	TargetFPS = 30

	// App
	AppName    = "ULTRASONIC-RADAR"
	AppVersion = "0.5.0"
	WindowName = "Radar"
)
