package service

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"slidecast/model"
)

// 讲稿解析：把多种格式的简报讲稿解析为 页面/句子 结构。
//
// 支持的页面标题格式：
//   - Page1: / Page 1: / page1：
//   - 第1頁: / 第 1 頁： / 第1页
//   - 第一頁: / 第二十三頁：
//   - 【第1頁】 / ---第1頁---
//
// 支持的内容格式：
//   - 每句独立一行
//   - 同行多句空格分隔（AI生成讲稿常见）
//   - 中文标点分句
//   - 混合格式

// DefaultMinSentenceLen 默认最短句子长度（rune数）
const DefaultMinSentenceLen = 4

// 页面标题匹配
var (
	// 英文格式: Page1: / Page 1: / page1：
	pageHeaderEN = regexp.MustCompile(`(?i)^Page\s*(\d+)\s*[:：]\s*(.*)`)

	// 中文阿拉伯数字格式: 第1頁: / 第 1 頁： / 第1頁
	pageHeaderCNArabic = regexp.MustCompile(`^[【\-─]*\s*第\s*(\d+)\s*[頁页]\s*[】\-─]*\s*[:：]?\s*(.*)`)

	// 中文大写数字格式: 第一頁: / 第二十三頁：
	pageHeaderCNChar = regexp.MustCompile(`^[【\-─]*\s*第\s*([一二三四五六七八九十壹貳參肆伍陸柒捌玖拾]+)\s*[頁页]\s*[】\-─]*\s*[:：]?\s*(.*)`)

	// 中文标点作为分句依据
	sentenceTerminators = regexp.MustCompile(`[。！？；\n]`)
)

// 中文数字转阿拉伯数字
var cnDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
	'壹': 1, '貳': 2, '參': 3, '肆': 4, '伍': 5,
	'陸': 6, '柒': 7, '捌': 8, '玖': 9, '拾': 10,
}

// chineseNumToInt 将简单中文数字转为整数，例如 一 -> 1, 十二 -> 12, 二十三 -> 23。
// 无法解析时返回 0, false。
func chineseNumToInt(cn string) (int, bool) {
	runes := []rune(strings.TrimSpace(cn))
	if len(runes) == 0 {
		return 0, false
	}

	// 单字
	if len(runes) == 1 {
		if v, ok := cnDigits[runes[0]]; ok {
			return v, true
		}
		return 0, false
	}

	// 十几
	if len(runes) == 2 && (runes[0] == '十' || runes[0] == '拾') {
		if v, ok := cnDigits[runes[1]]; ok && v < 10 {
			return 10 + v, true
		}
		return 0, false
	}

	// 几十 / 几十几
	for i, r := range runes {
		if r != '十' && r != '拾' {
			continue
		}
		tens := 1
		if i > 0 {
			v, ok := cnDigits[runes[0]]
			if !ok || i != 1 {
				return 0, false
			}
			tens = v
		}
		ones := 0
		rest := runes[i+1:]
		if len(rest) == 1 {
			v, ok := cnDigits[rest[0]]
			if !ok || v >= 10 {
				return 0, false
			}
			ones = v
		} else if len(rest) > 1 {
			return 0, false
		}
		return tens*10 + ones, true
	}

	return 0, false
}

// ScriptParser 讲稿解析器
type ScriptParser struct {
	minSentenceLen int
}

// NewScriptParser 创建讲稿解析器。minSentenceLen<=0 时使用默认阈值。
func NewScriptParser(minSentenceLen int) *ScriptParser {
	if minSentenceLen <= 0 {
		minSentenceLen = DefaultMinSentenceLen
	}
	return &ScriptParser{minSentenceLen: minSentenceLen}
}

// matchPageHeader 尝试匹配页面标题，返回 (页码, 标题后同行剩余内容, 是否匹配)。
// 三种格式按顺序尝试，第一个命中的生效。
func (sp *ScriptParser) matchPageHeader(line string) (int, string, bool) {
	stripped := strings.TrimSpace(line)

	if m := pageHeaderEN.FindStringSubmatch(stripped); m != nil {
		num, err := strconv.Atoi(m[1])
		if err == nil {
			return num, strings.TrimSpace(m[2]), true
		}
	}

	if m := pageHeaderCNArabic.FindStringSubmatch(stripped); m != nil {
		num, err := strconv.Atoi(m[1])
		if err == nil {
			return num, strings.TrimSpace(m[2]), true
		}
	}

	if m := pageHeaderCNChar.FindStringSubmatch(stripped); m != nil {
		// 数字字符无法解析时当作普通内容行处理
		if num, ok := chineseNumToInt(m[1]); ok {
			return num, strings.TrimSpace(m[2]), true
		}
	}

	return 0, "", false
}

// SplitIntoSentences 将一段文字智能分割为多个句子。
//
// 策略（按优先顺序）：
//  1. 文字中有换行，按换行分割
//  2. 有中文句号/问号/叹号/分号，按标点分割
//  3. 按空格分割后平均长度达到阈值，视为空格分隔的多句（AI生成讲稿格式）
//  4. 以上都不适用，整段作为一句
func (sp *ScriptParser) SplitIntoSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// 策略 1: 按换行分割
	if strings.Contains(text, "\n") {
		var sentences []string
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				sentences = append(sentences, line)
			}
		}
		return sentences
	}

	// 策略 2: 按中文标点分割
	if sentenceTerminators.MatchString(text) {
		var sentences []string
		for _, part := range sentenceTerminators.Split(text, -1) {
			part = strings.TrimSpace(part)
			if part != "" {
				sentences = append(sentences, part)
			}
		}
		return sp.mergeShortSentences(sentences)
	}

	// 策略 3: 按空格分割
	var parts []string
	for _, part := range strings.Split(text, " ") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 1 {
		totalLen := 0
		for _, p := range parts {
			totalLen += len([]rune(p))
		}
		avgLen := float64(totalLen) / float64(len(parts))
		if avgLen >= float64(sp.minSentenceLen) {
			return sp.mergeShortSentences(parts)
		}
	}

	// 策略 4: 整段作为一句
	return []string{text}
}

// mergeShortSentences 把过短的句子并入前一句，避免标点残片变成碎句。
// 只向前合并，开头的短句保留。
func (sp *ScriptParser) mergeShortSentences(sentences []string) []string {
	if len(sentences) == 0 {
		return nil
	}

	merged := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if len(merged) > 0 && len([]rune(s)) < sp.minSentenceLen {
			merged[len(merged)-1] += s
		} else {
			merged = append(merged, s)
		}
	}
	return merged
}

// ParseScript 智能解析讲稿文字，永不失败：最坏情况产出单页单句。
// 页面标题本身不进入句子列表（不会被朗读）。
func (sp *ScriptParser) ParseScript(text string) *model.Script {
	// 移除 BOM
	text = strings.TrimPrefix(text, "\ufeff")

	script := &model.Script{}
	var currentPage *model.Page

	appendSentences := func(chunk string) {
		for _, sentText := range sp.SplitIntoSentences(chunk) {
			currentPage.Sentences = append(currentPage.Sentences, &model.Sentence{
				Text:          sentText,
				PageIndex:     currentPage.PageIndex,
				SentenceIndex: len(currentPage.Sentences),
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if pageNumber, remaining, ok := sp.matchPageHeader(stripped); ok {
			currentPage = &model.Page{
				PageNumber: pageNumber,
				PageIndex:  len(script.Pages),
			}
			script.Pages = append(script.Pages, currentPage)

			// 标题同一行的剩余内容也要分句并归入新页面
			if remaining != "" {
				appendSentences(remaining)
			}
			continue
		}

		// 普通内容行；还没遇到任何页面标题时建立默认第 1 页
		if currentPage == nil {
			currentPage = &model.Page{PageNumber: 1, PageIndex: 0}
			script.Pages = append(script.Pages, currentPage)
		}
		appendSentences(stripped)
	}

	return script
}

// ParseScriptFile 从文件载入并解析讲稿
func (sp *ScriptParser) ParseScriptFile(filepath string) (*model.Script, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取讲稿文件失败: %w", err)
	}
	return sp.ParseScript(string(data)), nil
}

// ValidateScript 验证讲稿完整性，返回警告列表（非致命）。
// slideCount > 0 时与投影片页数交叉验证。
func ValidateScript(script *model.Script, slideCount int) []string {
	var warnings []string

	if len(script.Pages) == 0 {
		warnings = append(warnings, "讲稿中没有任何页面")
		return warnings
	}

	for _, page := range script.Pages {
		if len(page.Sentences) == 0 {
			warnings = append(warnings, fmt.Sprintf("第 %d 页没有任何句子", page.PageNumber))
		}
	}

	// 页码连续性
	for i := 1; i < len(script.Pages); i++ {
		prev, cur := script.Pages[i-1].PageNumber, script.Pages[i].PageNumber
		if cur != prev+1 {
			warnings = append(warnings, fmt.Sprintf("页码不连续：第 %d 页之后是第 %d 页", prev, cur))
		}
	}

	// 与投影片页数交叉验证
	if slideCount > 0 && len(script.Pages) != slideCount {
		warnings = append(warnings, fmt.Sprintf("讲稿有 %d 页，但简报有 %d 页，数量不一致",
			len(script.Pages), slideCount))
	}

	return warnings
}

// FormatScriptPreview 产生讲稿的结构化预览文字
func FormatScriptPreview(script *model.Script) string {
	var b strings.Builder
	for _, page := range script.Pages {
		fmt.Fprintf(&b, "═══ 第 %d 页 (%d 句) ═══\n", page.PageNumber, len(page.Sentences))
		for i, s := range page.Sentences {
			preview := s.Text
			if runes := []rune(preview); len(runes) > 50 {
				preview = string(runes[:50]) + "..."
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, preview)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "合计: %d 页, %d 句", len(script.Pages), script.TotalSentences())
	return b.String()
}
