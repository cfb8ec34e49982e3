package ffmpeg

import "errors"

// ErrNotFound indicates no FFmpeg binary could be located.
var ErrNotFound = errors.New("ffmpeg not found")

// ErrNoDuration indicates FFmpeg could not report the length of a video.
var ErrNoDuration = errors.New("could not read video duration")

// ErrNoFrames indicates frame extraction produced no image.
var ErrNoFrames = errors.New("no frames extracted")
