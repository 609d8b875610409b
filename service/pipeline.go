package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"slidecast/model"
	"slidecast/pkg/logger"
)

// 并行合成 + 顺序时间轴的两阶段流水线。
//
// 阶段1：把讲稿展开为规范序列，句子交给有界worker池并行合成，
// 结果写入按序号预留的槽位，完成顺序不影响存放位置。
// 阶段2：所有任务落定后，单线程按规范序列推进全局游标，
// 分配每句的起始时间、写出单句与页面音频。字幕时间轴完全不受并行影响。

// ProgressFunc 进度回调，阶段1可能从多个goroutine并发调用
type ProgressFunc func(completed, total int, message string)

// PageAudio 单页合成结果。Duration 是页面WAV写盘后读回的权威时长，
// 下游视频合成以它为准。
type PageAudio struct {
	PageNumber int     `json:"page_number"`
	AudioPath  string  `json:"audio_path"`
	Duration   float64 `json:"duration"`
}

// synthResult 单句合成结果槽位
type synthResult struct {
	samples    []float32
	sampleRate int
	err        error
}

// failed 合成失败或返回空采样都按失败处理
func (r *synthResult) failed() bool {
	return r.err != nil || len(r.samples) == 0
}

// synthTask 阶段1任务
type synthTask struct {
	index      int // 规范序列中的位置，即结果槽位
	pageNumber int
	text       string
}

// NarrationPipeline 讲稿语音流水线
type NarrationPipeline struct {
	config  *model.Config
	synth   Synthesizer
	limiter *rate.Limiter
	log     *slog.Logger
	runID   string
	refRate int // 本次运行的基准取样率，ProcessScript 填写
}

// NewNarrationPipeline 创建流水线
func NewNarrationPipeline(config *model.Config, synth Synthesizer) *NarrationPipeline {
	rateLimit := config.Concurrent.RateLimit
	if rateLimit <= 0 {
		rateLimit = 5
	}
	limiter := rate.NewLimiter(rate.Every(time.Second/time.Duration(rateLimit)), rateLimit)

	return &NarrationPipeline{
		config:  config,
		synth:   synth,
		limiter: limiter,
		log:     logger.L(),
		runID:   uuid.NewString(),
	}
}

// RunID 本次流水线的运行标识
func (np *NarrationPipeline) RunID() string {
	return np.runID
}

// ReferenceRate 本次运行的基准取样率。ProcessScript 之前调用时返回引擎宣告值。
func (np *NarrationPipeline) ReferenceRate() int {
	if np.refRate > 0 {
		return np.refRate
	}
	return np.synth.SampleRate()
}

func (np *NarrationPipeline) pauseSec() float64 {
	return np.config.Audio.PauseSec
}

func (np *NarrationPipeline) tolerance() float64 {
	if np.config.Audio.ReconcileToleranceSec > 0 {
		return np.config.Audio.ReconcileToleranceSec
	}
	return 0.1
}

// withSynthTimeout 给单句合成包一层超时，超时按合成失败处理
func (np *NarrationPipeline) withSynthTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if np.config.Concurrent.SynthTimeoutSec > 0 {
		return context.WithTimeout(ctx, time.Duration(np.config.Concurrent.SynthTimeoutSec)*time.Second)
	}
	return context.WithCancel(ctx)
}

// synthesizeOne 合成单句，带速率限制与超时
func (np *NarrationPipeline) synthesizeOne(ctx context.Context, text string, speed float64) synthResult {
	if err := np.limiter.Wait(ctx); err != nil {
		return synthResult{err: fmt.Errorf("等待速率限制失败: %w", err)}
	}

	callCtx, cancel := np.withSynthTimeout(ctx)
	defer cancel()

	samples, sampleRate, err := np.synth.Synthesize(callCtx, text, speed)
	if err != nil {
		return synthResult{err: err}
	}
	if len(samples) == 0 {
		return synthResult{err: fmt.Errorf("合成结果为空 (文本: %.30s)", text)}
	}
	return synthResult{samples: samples, sampleRate: sampleRate}
}

// synthesizeAll 阶段1：并行合成全部句子。
// 每个任务带着自己在规范序列中的序号，结果写入预留槽位，
// worker数为1时退化为严格顺序执行，输出与并行完全一致。
func (np *NarrationPipeline) synthesizeAll(ctx context.Context, flat []model.FlatSentence, speed float64, progress ProgressFunc) []synthResult {
	total := len(flat)
	results := make([]synthResult, total)
	if total == 0 {
		return results
	}

	taskChan := make(chan synthTask, total)
	resultChan := make(chan struct {
		index  int
		result synthResult
	}, total)

	for i, fs := range flat {
		taskChan <- synthTask{index: i, pageNumber: fs.Page.PageNumber, text: fs.Sentence.Text}
	}
	close(taskChan)

	workerCount := np.config.Concurrent.MaxWorkers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > total {
		workerCount = total
	}

	np.log.Info("开始并行合成", "run_id", np.runID, "workers", workerCount, "sentences", total, "engine", np.synth.Name())

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				res := np.synthesizeOne(ctx, task.text, speed)
				if res.err != nil {
					np.log.Error("合成失败", "run_id", np.runID, "page", task.pageNumber, "index", task.index, "error", res.err)
				}
				resultChan <- struct {
					index  int
					result synthResult
				}{task.index, res}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// 按序号归位，完成顺序只影响进度显示
	completed := 0
	for item := range resultChan {
		results[item.index] = item.result
		completed++
		if progress != nil {
			fs := flat[item.index]
			text := []rune(fs.Sentence.Text)
			if len(text) > 15 {
				text = text[:15]
			}
			progress(completed, total,
				fmt.Sprintf("已完成 %d/%d: P%d %s...", completed, total, fs.Page.PageNumber, string(text)))
		}
	}

	return results
}

// referenceRate 以规范序列中首个成功结果的取样率为准；
// 全部失败时退回引擎宣告值。
func (np *NarrationPipeline) referenceRate(results []synthResult) int {
	for _, r := range results {
		if !r.failed() {
			if r.sampleRate != np.synth.SampleRate() {
				np.log.Warn("取样率修正",
					"declared", np.synth.SampleRate(), "actual", r.sampleRate)
			}
			return r.sampleRate
		}
	}
	return np.synth.SampleRate()
}

// ProcessScript 处理整份讲稿：并行合成全部句子后按顺序分配时间轴，
// 写出单句与页面WAV。副作用：填写每个句子的 DurationSec/StartSec/AudioPath。
//
// 单句合成失败以1秒静音替代并继续，只有产物写盘失败才中止。
func (np *NarrationPipeline) ProcessScript(ctx context.Context, script *model.Script, outputDir string, progress ProgressFunc) ([]PageAudio, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	flat := script.Flatten()
	total := len(flat)

	if progress != nil {
		progress(0, total, "开始并行合成音频...")
	}

	// 阶段1：并行合成
	results := np.synthesizeAll(ctx, flat, np.config.TTS.Speed, progress)

	// 阶段2：单线程按规范序列分配时间轴
	refRate := np.referenceRate(results)
	np.refRate = refRate

	// 句间停顿取整到采样点，避免小数采样的累积漂移
	pauseSamples := int(np.pauseSec() * float64(refRate))
	exactPause := float64(pauseSamples) / float64(refRate)

	globalCursor := 0.0
	flatIdx := 0
	pageAudios := make([]PageAudio, 0, len(script.Pages))

	for _, page := range script.Pages {
		var segments [][]float32

		for i, sentence := range page.Sentences {
			res := results[flatIdx]

			if i > 0 {
				globalCursor += exactPause
			}
			sentence.StartSec = globalCursor

			if !res.failed() {
				if res.sampleRate != refRate {
					np.log.Warn("取样率不一致", "current", res.sampleRate, "reference", refRate)
				}

				sentence.DurationSec = float64(len(res.samples)) / float64(res.sampleRate)
				segments = append(segments, res.samples)

				wavPath := filepath.Join(outputDir,
					fmt.Sprintf("page%03d_sent%03d.wav", page.PageNumber, sentence.SentenceIndex))
				if err := SaveWav(wavPath, res.samples, res.sampleRate); err != nil {
					return nil, err
				}
				sentence.AudioPath = wavPath

				np.log.Info("时间轴分配",
					"page", page.PageNumber,
					"sentence", sentence.SentenceIndex+1,
					"duration", sentence.DurationSec,
					"start", sentence.StartSec)
			} else {
				// 合成失败以1秒静音替代，不中止后续句子
				segments = append(segments, GenerateSilence(1.0, refRate))
				sentence.DurationSec = 1.0
				sentence.AudioPath = ""
			}

			globalCursor += sentence.DurationSec
			flatIdx++
		}

		if len(segments) > 0 {
			combined := ConcatenateAudio(segments, np.pauseSec(), refRate)

			pageWav := filepath.Join(outputDir, fmt.Sprintf("page%03d_full.wav", page.PageNumber))
			if err := SaveWav(pageWav, combined, refRate); err != nil {
				return nil, err
			}

			// 页面时长从写盘后的文件读回，作为下游视频合成的权威值
			pageDuration, err := GetWavDuration(pageWav)
			if err != nil {
				return nil, err
			}
			pageAudios = append(pageAudios, PageAudio{
				PageNumber: page.PageNumber,
				AudioPath:  pageWav,
				Duration:   pageDuration,
			})
		} else {
			pageAudios = append(pageAudios, PageAudio{PageNumber: page.PageNumber})
		}
	}

	np.reconcile(globalCursor, pageAudios)

	return pageAudios, nil
}

// reconcile 对账：字幕时间轴总长与页面音频实际总长的偏差超过容差时告警。
// 只诊断不中止，页面文件时长是视频合成的权威值，游标是字幕的权威值。
func (np *NarrationPipeline) reconcile(cursorTotal float64, pageAudios []PageAudio) {
	var actualTotal float64
	for _, pa := range pageAudios {
		actualTotal += pa.Duration
	}

	np.log.Info("时间轴摘要", "run_id", np.runID,
		"subtitle_total", cursorTotal, "audio_total", actualTotal)

	if math.Abs(cursorTotal-actualTotal) > np.tolerance() {
		np.log.Warn("字幕时间与音频时间偏差超过容差",
			"subtitle_total", cursorTotal,
			"audio_total", actualTotal,
			"diff", cursorTotal-actualTotal,
			"tolerance", np.tolerance())
	}
}

// RecalculateTimeline 按规范序列重走一遍全局游标，重新分配每句的起始时间。
// 不做任何合成，单句编辑后调用，保证相邻页面不会错位。
// sampleRate>0 时停顿取整到采样点，与完整流水线一致。
func RecalculateTimeline(script *model.Script, pauseSec float64, sampleRate int) {
	exactPause := pauseSec
	if sampleRate > 0 {
		exactPause = float64(int(pauseSec*float64(sampleRate))) / float64(sampleRate)
	}

	globalCursor := 0.0
	for _, page := range script.Pages {
		for i, sentence := range page.Sentences {
			if i > 0 {
				globalCursor += exactPause
			}
			sentence.StartSec = globalCursor
			globalCursor += sentence.DurationSec
		}
	}
}

// RebuildPageAudio 从单句WAV产物重建页面音频。
// 缺失产物的句子用1秒静音占位。返回写盘读回的页面时长。
func RebuildPageAudio(page *model.Page, outputDir string, pauseSec float64, sampleRate int) (PageAudio, error) {
	segments := make([][]float32, 0, len(page.Sentences))

	for _, sentence := range page.Sentences {
		if sentence.AudioPath != "" {
			if samples, _, err := LoadWav(sentence.AudioPath); err == nil {
				segments = append(segments, samples)
				continue
			}
		}
		segments = append(segments, GenerateSilence(1.0, sampleRate))
	}

	if len(segments) == 0 {
		return PageAudio{PageNumber: page.PageNumber}, nil
	}

	combined := ConcatenateAudio(segments, pauseSec, sampleRate)

	pageWav := filepath.Join(outputDir, fmt.Sprintf("page%03d_full.wav", page.PageNumber))
	if err := SaveWav(pageWav, combined, sampleRate); err != nil {
		return PageAudio{}, err
	}
	duration, err := GetWavDuration(pageWav)
	if err != nil {
		return PageAudio{}, err
	}

	return PageAudio{PageNumber: page.PageNumber, AudioPath: pageWav, Duration: duration}, nil
}

// ResynthesizeSentence 单句重新合成（编辑流程）。
// 只合成这一句，然后重建所在页面的音频，再重走整份讲稿的时间轴，
// 保证编辑页不会让相邻页面的起始时间失去同步。
func (np *NarrationPipeline) ResynthesizeSentence(ctx context.Context, script *model.Script, pageIndex, sentenceIndex int, newText string, outputDir string) (PageAudio, error) {
	page := script.GetPage(pageIndex)
	sentence := script.GetSentence(pageIndex, sentenceIndex)
	if page == nil || sentence == nil {
		return PageAudio{}, fmt.Errorf("找不到句子: 页面%d 句子%d", pageIndex, sentenceIndex)
	}
	if newText == "" {
		newText = sentence.Text
	}

	res := np.synthesizeOne(ctx, newText, np.config.TTS.Speed)
	if res.failed() {
		return PageAudio{}, fmt.Errorf("单句重新合成失败: %w", res.err)
	}

	wavPath := sentence.AudioPath
	if wavPath == "" {
		wavPath = filepath.Join(outputDir,
			fmt.Sprintf("page%03d_sent%03d.wav", page.PageNumber, sentence.SentenceIndex))
	}
	if err := SaveWav(wavPath, res.samples, res.sampleRate); err != nil {
		return PageAudio{}, err
	}

	sentence.Text = newText
	sentence.AudioPath = wavPath
	sentence.DurationSec = float64(len(res.samples)) / float64(res.sampleRate)

	pageAudio, err := RebuildPageAudio(page, outputDir, np.pauseSec(), res.sampleRate)
	if err != nil {
		return PageAudio{}, err
	}

	RecalculateTimeline(script, np.pauseSec(), res.sampleRate)

	np.log.Info("单句重新合成完成",
		"page", page.PageNumber, "sentence", sentence.SentenceIndex+1,
		"duration", sentence.DurationSec)

	return pageAudio, nil
}
