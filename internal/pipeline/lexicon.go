package pipeline

import "slices"

// defaultBreakAfter lists words after which a dense-script line break reads
// naturally: particles, conjunctions and discourse markers.
var defaultBreakAfter = []string{
	"的", "了", "吧", "呢", "啊", "哦", "嘛", "呀", "哈", "吗", "啦", "喽",
	"就是", "但是", "所以", "因为", "然后", "而且", "或者", "如果", "那么",
	"不过", "可是", "虽然", "既然", "无论", "不管", "只要", "除非", "即使",
	"可以", "需要", "应该", "必须", "能够", "不能", "不要", "一定",
	"建议", "推荐", "记住", "注意", "首先", "其次", "最后", "第一", "第二", "第三",
}

// defaultProtected lists words that must not be split across lines.
var defaultProtected = []string{
	"网络", "账号", "密码", "邮箱", "手机", "电脑", "浏览器", "服务器",
	"平台", "软件", "工具", "视频", "音频", "文件", "目录", "路径",
	"安全", "隐私", "环境", "设备", "系统", "功能", "内容", "信息",
	"规则", "意识", "言论", "敏感", "高价值", "账户", "登录", "注册",
	"下载", "安装", "配置", "设置", "运行", "使用", "操作", "处理",
	"指纹", "身份", "证明", "验证", "授权", "权限", "风险", "问题",
}

// Lexicon holds the word tables consulted by the dense-script break point
// search. A Lexicon is immutable once built and safe to share.
type Lexicon struct {
	protected  [][]rune
	breakAfter [][]rune
}

// DefaultLexicon is the built-in table set.
var DefaultLexicon = NewLexicon(defaultProtected, defaultBreakAfter)

// NewLexicon copies the given word lists into a new Lexicon. Empty entries
// are ignored.
func NewLexicon(protected, breakAfter []string) *Lexicon {
	return &Lexicon{
		protected:  toRuneTable(protected),
		breakAfter: toRuneTable(breakAfter),
	}
}

func toRuneTable(words []string) [][]rune {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	table := make([][]rune, 0, len(sorted))
	for _, w := range sorted {
		if w == "" {
			continue
		}
		table = append(table, []rune(w))
	}
	return table
}

// splitsProtected reports whether cutting before runes[pos] would fall
// strictly inside an occurrence of word.
func splitsProtected(runes []rune, pos int, word []rune) bool {
	n := len(word)
	for i := max(0, pos-n+1); i < pos && i+n <= len(runes); i++ {
		if slices.Equal(runes[i:i+n], word) {
			return true
		}
	}
	return false
}

// endsWithWord reports whether runes[:pos] ends with word.
func endsWithWord(runes []rune, pos int, word []rune) bool {
	n := len(word)
	return pos >= n && slices.Equal(runes[pos-n:pos], word)
}
