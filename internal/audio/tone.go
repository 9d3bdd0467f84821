// Package audio 合成场景提示音
//
// 场景不附带任何音频文件，所有提示音都由若干段正弦扫频合成为
// 16 位小端立体声 PCM，可直接交给 ebiten 的 audio.Player 播放。
package audio

import (
	"fmt"
	"io"
	"math"
)

// Tone 一段正弦扫频
type Tone struct {
	Freq     float64 // 起始频率 Hz
	EndFreq  float64 // 结束频率 Hz，0 表示与 Freq 相同
	Duration float64 // 时长（秒）
	Volume   float64 // 振幅 0.0 ~ 1.0
}

// bytesPerFrame 每帧字节数（16 位 × 2 声道）
const bytesPerFrame = 4

// fadeFrames 每段末尾的淡出帧数，避免爆音
const fadeFrames = 256

// Synthesize 将一组音段依次合成为 PCM 数据
//
// 参数：
//   - sampleRate: 采样率 Hz
//   - tones: 依次播放的音段
//
// 返回：
//   - []byte: 16 位小端立体声 PCM
//   - error: 参数非法时返回错误
func Synthesize(sampleRate int, tones ...Tone) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	total := 0
	for i, tone := range tones {
		if tone.Duration < 0 || tone.Freq < 0 || tone.EndFreq < 0 {
			return nil, fmt.Errorf("invalid tone %d: %+v", i, tone)
		}
		total += int(tone.Duration * float64(sampleRate))
	}

	pcm := make([]byte, 0, total*bytesPerFrame)
	for _, tone := range tones {
		pcm = appendTone(pcm, sampleRate, tone)
	}
	return pcm, nil
}

// appendTone 合成单个音段并追加到 pcm
func appendTone(pcm []byte, sampleRate int, tone Tone) []byte {
	frames := int(tone.Duration * float64(sampleRate))
	endFreq := tone.EndFreq
	if endFreq == 0 {
		endFreq = tone.Freq
	}
	volume := math.Max(0, math.Min(1, tone.Volume))

	phase := 0.0
	for i := 0; i < frames; i++ {
		progress := float64(i) / float64(frames)
		freq := tone.Freq + (endFreq-tone.Freq)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		amp := volume
		if remain := frames - i; remain < fadeFrames {
			amp *= float64(remain) / fadeFrames
		}

		v := int16(math.Sin(phase) * amp * math.MaxInt16)
		lo, hi := byte(v), byte(v>>8)
		// 左右声道相同
		pcm = append(pcm, lo, hi, lo, hi)
	}
	return pcm
}

// Stream 内存中的 PCM 流，实现 io.ReadSeeker
type Stream struct {
	data   []byte
	offset int64
}

// NewStream 包装合成好的 PCM 数据
func NewStream(pcm []byte) *Stream {
	return &Stream{data: pcm}
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	s.offset = newOffset
	return newOffset, nil
}

// Length 返回 PCM 数据的字节数
func (s *Stream) Length() int64 {
	return int64(len(s.data))
}
