package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecast/model"
)

func TestChineseNumToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"一", 1, true},
		{"九", 9, true},
		{"十", 10, true},
		{"十二", 12, true},
		{"二十", 20, true},
		{"二十三", 23, true},
		{"壹", 1, true},
		{"拾", 10, true},
		{"拾伍", 15, true},
		{"", 0, false},
		{"二三", 0, false},
		{"十十", 0, false},
		{"一二十", 0, false},
		{"甲", 0, false},
	}

	for _, tt := range tests {
		got, ok := chineseNumToInt(tt.in)
		assert.Equal(t, tt.ok, ok, "输入: %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "输入: %q", tt.in)
		}
	}
}

func TestMatchPageHeader(t *testing.T) {
	sp := NewScriptParser(0)

	tests := []struct {
		line     string
		wantNum  int
		wantRest string
		wantOK   bool
	}{
		// 英文格式
		{"Page1: 你好", 1, "你好", true},
		{"Page 12: hello world", 12, "hello world", true},
		{"page3：小写也可以", 3, "小写也可以", true},
		{"PAGE 7:", 7, "", true},

		// 中文阿拉伯数字格式
		{"第1頁：今天", 1, "今天", true},
		{"第 2 頁: 内容", 2, "内容", true},
		{"第3页", 3, "", true},
		{"【第4頁】", 4, "", true},
		{"---第5頁---", 5, "", true},

		// 中文大写数字格式
		{"第一頁：开场", 1, "开场", true},
		{"第十二頁", 12, "", true},
		{"第二十三頁：结尾", 23, "结尾", true},
		{"【第壹頁】", 1, "", true},

		// 非标题
		{"这是普通内容", 0, "", false},
		{"Page: 没有数字", 0, "", false},
		{"第頁", 0, "", false},
		{"第甲頁", 0, "", false},
	}

	for _, tt := range tests {
		num, rest, ok := sp.matchPageHeader(tt.line)
		assert.Equal(t, tt.wantOK, ok, "输入: %q", tt.line)
		if tt.wantOK {
			assert.Equal(t, tt.wantNum, num, "输入: %q", tt.line)
			assert.Equal(t, tt.wantRest, rest, "输入: %q", tt.line)
		}
	}
}

func TestSplitIntoSentences(t *testing.T) {
	sp := NewScriptParser(4)

	t.Run("换行分割", func(t *testing.T) {
		got := sp.SplitIntoSentences("第一句\n第二句\n\n第三句")
		assert.Equal(t, []string{"第一句", "第二句", "第三句"}, got)
	})

	t.Run("标点分割", func(t *testing.T) {
		got := sp.SplitIntoSentences("今天天氣很好。我們出去玩！好不好？")
		assert.Equal(t, []string{"今天天氣很好", "我們出去玩", "好不好"}, got)
	})

	t.Run("标点分割合并碎句", func(t *testing.T) {
		// "了" 只有1个字，并入前一句
		got := sp.SplitIntoSentences("今天天氣真的很好。了。")
		assert.Equal(t, []string{"今天天氣真的很好了"}, got)
	})

	t.Run("空格分割", func(t *testing.T) {
		got := sp.SplitIntoSentences("今天天氣很好 我們一起出去玩 記得帶雨傘")
		assert.Equal(t, []string{"今天天氣很好", "我們一起出去玩", "記得帶雨傘"}, got)
	})

	t.Run("空格片段太短时整段一句", func(t *testing.T) {
		// 平均长度低于阈值，不触发空格分割
		got := sp.SplitIntoSentences("你好 世界")
		assert.Equal(t, []string{"你好 世界"}, got)
	})

	t.Run("整段一句", func(t *testing.T) {
		got := sp.SplitIntoSentences("沒有任何分隔符的一段話")
		assert.Equal(t, []string{"沒有任何分隔符的一段話"}, got)
	})

	t.Run("空白输入", func(t *testing.T) {
		assert.Nil(t, sp.SplitIntoSentences("   "))
	})
}

func TestMergeShortSentences(t *testing.T) {
	sp := NewScriptParser(4)

	t.Run("短句并入前句", func(t *testing.T) {
		got := sp.mergeShortSentences([]string{"这是完整的一句", "嗯", "这是另一句话"})
		assert.Equal(t, []string{"这是完整的一句嗯", "这是另一句话"}, got)
	})

	t.Run("开头短句保留", func(t *testing.T) {
		got := sp.mergeShortSentences([]string{"嗯", "后面这句够长了"})
		assert.Equal(t, []string{"嗯", "后面这句够长了"}, got)
	})

	t.Run("空列表", func(t *testing.T) {
		assert.Nil(t, sp.mergeShortSentences(nil))
	})
}

func TestParseScript(t *testing.T) {
	t.Run("每句一行格式", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("第1頁：\n大家好\n今天講併發\n第2頁：\n先看範例")

		require.Len(t, script.Pages, 2)
		assert.Equal(t, 1, script.Pages[0].PageNumber)
		assert.Equal(t, []string{"大家好", "今天講併發"}, sentenceTexts(script.Pages[0]))
		assert.Equal(t, []string{"先看範例"}, sentenceTexts(script.Pages[1]))
	})

	t.Run("标题同行内容归入新页", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("第1頁：開場白。\nPage2: 這一頁講重點。接著示範！")

		require.Len(t, script.Pages, 2)
		assert.Equal(t, []string{"開場白"}, sentenceTexts(script.Pages[0]))
		assert.Equal(t, []string{"這一頁講重點", "接著示範"}, sentenceTexts(script.Pages[1]))
	})

	t.Run("无标题时建立默认第1页", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("這是沒有標題的內容\n繼續第二句")

		require.Len(t, script.Pages, 1)
		assert.Equal(t, 1, script.Pages[0].PageNumber)
		assert.Equal(t, 0, script.Pages[0].PageIndex)
		assert.Len(t, script.Pages[0].Sentences, 2)
	})

	t.Run("标题前的内容不丢弃", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("開場內容在標題之前\n第2頁：\n正式內容")

		require.Len(t, script.Pages, 2)
		assert.Equal(t, 1, script.Pages[0].PageNumber)
		assert.Equal(t, []string{"開場內容在標題之前"}, sentenceTexts(script.Pages[0]))
	})

	t.Run("移除BOM", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("\ufeff第1頁：\n你好嗎今天")

		require.Len(t, script.Pages, 1)
		assert.Equal(t, 1, script.Pages[0].PageNumber)
	})

	t.Run("解析器不填时间字段", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("第1頁：\n這是一句話")

		s := script.Pages[0].Sentences[0]
		assert.Zero(t, s.DurationSec)
		assert.Zero(t, s.StartSec)
		assert.Empty(t, s.AudioPath)
	})

	t.Run("混合格式完整场景", func(t *testing.T) {
		// 阈值2让短句空格分割也能触发
		sp := NewScriptParser(2)
		script := sp.ParseScript("Page1: 你好 世界\n第2頁：\n今天天氣很好。")

		require.Len(t, script.Pages, 2)
		assert.Equal(t, []string{"你好", "世界"}, sentenceTexts(script.Pages[0]))
		assert.Equal(t, []string{"今天天氣很好"}, sentenceTexts(script.Pages[1]))
	})

	t.Run("句子序号页内连续", func(t *testing.T) {
		sp := NewScriptParser(0)
		script := sp.ParseScript("第1頁：\n第一句話夠長\n第二句話夠長\n第2頁：\n新頁第一句")

		for _, page := range script.Pages {
			for i, s := range page.Sentences {
				assert.Equal(t, i, s.SentenceIndex)
				assert.Equal(t, page.PageIndex, s.PageIndex)
			}
		}
	})
}

func TestParseScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("第1頁：\n測試內容在這裡"), 0644))

	sp := NewScriptParser(0)
	script, err := sp.ParseScriptFile(path)
	require.NoError(t, err)
	assert.Len(t, script.Pages, 1)

	_, err = sp.ParseScriptFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestParseScriptRoundTrip(t *testing.T) {
	// 三种分句策略下，解析出的句子集合与原文内容一致（忽略标题行）
	sp := NewScriptParser(4)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"换行策略", "第1頁：\n今天講併發模型\n先看基本概念", []string{"今天講併發模型", "先看基本概念"}},
		{"标点策略", "第1頁：今天講併發模型。先看基本概念！", []string{"今天講併發模型", "先看基本概念"}},
		{"空格策略", "第1頁：今天講併發模型 先看基本概念", []string{"今天講併發模型", "先看基本概念"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := sp.ParseScript(tt.input)
			var got []string
			for _, fs := range script.Flatten() {
				got = append(got, fs.Sentence.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateScript(t *testing.T) {
	sp := NewScriptParser(0)

	t.Run("正常讲稿无警告", func(t *testing.T) {
		script := sp.ParseScript("第1頁：\n內容一在這裡\n第2頁：\n內容二在這裡")
		assert.Empty(t, ValidateScript(script, 0))
	})

	t.Run("空讲稿", func(t *testing.T) {
		script := sp.ParseScript("")
		warnings := ValidateScript(script, 0)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "没有任何页面")
	})

	t.Run("空页面", func(t *testing.T) {
		script := sp.ParseScript("第1頁：\n第2頁：\n有內容的頁面")
		warnings := ValidateScript(script, 0)
		require.NotEmpty(t, warnings)
		assert.Contains(t, warnings[0], "第 1 页")
	})

	t.Run("页码不连续", func(t *testing.T) {
		script := sp.ParseScript("第1頁：\n內容一在這裡\n第3頁：\n內容三在這裡")
		warnings := ValidateScript(script, 0)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "页码不连续")
	})

	t.Run("投影片页数不符", func(t *testing.T) {
		script := sp.ParseScript("第1頁：\n內容一在這裡")
		warnings := ValidateScript(script, 3)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "数量不一致")
	})
}

func TestFormatScriptPreview(t *testing.T) {
	sp := NewScriptParser(0)
	script := sp.ParseScript("第1頁：\n這是預覽測試內容")

	preview := FormatScriptPreview(script)
	assert.Contains(t, preview, "第 1 页")
	assert.Contains(t, preview, "這是預覽測試內容")
	assert.Contains(t, preview, "1 页, 1 句")

	// 超长句子截断
	long := strings.Repeat("很長", 40)
	script2 := sp.ParseScript("第1頁：\n" + long)
	assert.Contains(t, FormatScriptPreview(script2), "...")
}

func sentenceTexts(p *model.Page) []string {
	texts := make([]string, 0, len(p.Sentences))
	for _, s := range p.Sentences {
		texts = append(texts, s.Text)
	}
	return texts
}
