package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	catAudio "github.com/bumagh/AwesomeCat/internal/audio"
)

// 提示音 ID
const (
	// SoundDominoTick 骨牌倒下的"嗒"声
	SoundDominoTick = "SOUND_DOMINO_TICK"
	// SoundCelebrate 庆祝琶音
	SoundCelebrate = "SOUND_CELEBRATE"
	// SoundFail 闪回失败的低沉下滑音
	SoundFail = "SOUND_FAIL"
	// SoundMeow 反馈时的"喵"
	SoundMeow = "SOUND_MEOW"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// soundCues 每个提示音的合成参数
var soundCues = map[string][]catAudio.Tone{
	SoundDominoTick: {
		{Freq: 1200, EndFreq: 700, Duration: 0.04, Volume: 0.35},
	},
	SoundCelebrate: {
		{Freq: 523.25, Duration: 0.09, Volume: 0.4},
		{Freq: 659.25, Duration: 0.09, Volume: 0.4},
		{Freq: 783.99, Duration: 0.09, Volume: 0.4},
		{Freq: 1046.5, Duration: 0.2, Volume: 0.4},
	},
	SoundFail: {
		{Freq: 220, EndFreq: 150, Duration: 0.3, Volume: 0.5},
		{Freq: 196, EndFreq: 98, Duration: 0.4, Volume: 0.5},
	},
	SoundMeow: {
		{Freq: 600, EndFreq: 900, Duration: 0.12, Volume: 0.4},
		{Freq: 900, EndFreq: 480, Duration: 0.22, Volume: 0.4},
	},
}

// AudioManager 音频管理器
// 职责：
//   - 按需合成并缓存提示音播放器
//   - 从 SettingsManager 读取开关和音量
//
// audio.Context 为 nil 时（无声卡、无头测试）所有播放静默失败。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放提示音
// 提示音使用 SoundVolume 设置控制音量，单次播放
//
// 参数：
//   - soundID: 提示音 ID（如 SoundDominoTick）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// SetSoundVolume 设置提示音音量
// 此方法会影响后续播放的所有提示音
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}

	volume = clampVolume(volume)
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前提示音音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// PreloadSounds 预合成所有提示音
// 在场景初始化时调用，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() int {
	loaded := 0
	for soundID := range soundCues {
		if am.getSoundPlayer(soundID) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d sounds", loaded)
	return loaded
}

// getSoundPlayer 获取或合成提示音播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.context == nil {
		return nil
	}

	tones, ok := soundCues[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	pcm, err := catAudio.Synthesize(am.context.SampleRate(), tones...)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to synthesize sound %s: %v", soundID, err)
		return nil
	}

	player, err := am.context.NewPlayer(catAudio.NewStream(pcm))
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", soundID, err)
		return nil
	}

	am.soundPlayers[soundID] = player
	return player
}

// getSoundVolume 获取提示音音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
