package model

// Sentence 单一句子，讲稿中最小的朗读单位。
// DurationSec 和 StartSec 由音频流水线在时间轴分配阶段填写，解析器不碰。
type Sentence struct {
	Text          string  `json:"text"`
	PageIndex     int     `json:"page_index"`
	SentenceIndex int     `json:"sentence_index"`
	AudioPath     string  `json:"audio_path,omitempty"`
	DurationSec   float64 `json:"duration_sec"`
	StartSec      float64 `json:"start_sec"` // 全局时间轴起始时间
}

// Page 单一页面，对应一张投影片
type Page struct {
	PageNumber int         `json:"page_number"` // 1起始，讲稿中声明的页码，可能不连续
	PageIndex  int         `json:"page_index"`  // 0起始，结构位置，恒连续
	Sentences  []*Sentence `json:"sentences"`
}

// TotalDuration 该页所有句子时长之和（不含句间停顿）
func (p *Page) TotalDuration() float64 {
	var total float64
	for _, s := range p.Sentences {
		total += s.DurationSec
	}
	return total
}

// Reindex 重排句子序号，保持页内连续
func (p *Page) Reindex() {
	for i, s := range p.Sentences {
		s.SentenceIndex = i
		s.PageIndex = p.PageIndex
	}
}

// InsertSentence 在idx位置插入新句子并重排序号。idx越界时追加到末尾。
func (p *Page) InsertSentence(idx int, text string) *Sentence {
	s := &Sentence{Text: text, PageIndex: p.PageIndex}
	if idx < 0 || idx >= len(p.Sentences) {
		p.Sentences = append(p.Sentences, s)
	} else {
		p.Sentences = append(p.Sentences[:idx], append([]*Sentence{s}, p.Sentences[idx:]...)...)
	}
	p.Reindex()
	return s
}

// DeleteSentence 删除idx位置的句子并重排序号
func (p *Page) DeleteSentence(idx int) bool {
	if idx < 0 || idx >= len(p.Sentences) {
		return false
	}
	p.Sentences = append(p.Sentences[:idx], p.Sentences[idx+1:]...)
	p.Reindex()
	return true
}

// Script 完整讲稿
type Script struct {
	Pages []*Page `json:"pages"`
}

// TotalSentences 全部句子数
func (s *Script) TotalSentences() int {
	var total int
	for _, p := range s.Pages {
		total += len(p.Sentences)
	}
	return total
}

// TotalDuration 全部句子时长之和
func (s *Script) TotalDuration() float64 {
	var total float64
	for _, p := range s.Pages {
		total += p.TotalDuration()
	}
	return total
}

// GetPage 按结构位置取页面
func (s *Script) GetPage(pageIndex int) *Page {
	if pageIndex < 0 || pageIndex >= len(s.Pages) {
		return nil
	}
	return s.Pages[pageIndex]
}

// GetSentence 按(页面位置, 句子序号)取句子
func (s *Script) GetSentence(pageIndex, sentenceIndex int) *Sentence {
	p := s.GetPage(pageIndex)
	if p == nil || sentenceIndex < 0 || sentenceIndex >= len(p.Sentences) {
		return nil
	}
	return p.Sentences[sentenceIndex]
}

// FlatSentence 规范序列中的一项：页面与句子的配对
type FlatSentence struct {
	Page     *Page
	Sentence *Sentence
}

// Flatten 展开为规范序列（页优先、页内按句子顺序）。
// 时间轴分配、字幕编号、结果槽位都以这个顺序为准。
func (s *Script) Flatten() []FlatSentence {
	flat := make([]FlatSentence, 0, s.TotalSentences())
	for _, p := range s.Pages {
		for _, sent := range p.Sentences {
			flat = append(flat, FlatSentence{Page: p, Sentence: sent})
		}
	}
	return flat
}
