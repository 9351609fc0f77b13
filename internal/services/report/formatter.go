package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/models"
)

const (
	sectionRule = "=============================="

	emptyListNotice = "등록된 관심 종목이 없습니다. /add <티커>로 추가하세요."
)

// formatHeader renders the report title with a localized timestamp.
func formatHeader(now time.Time) string {
	return fmt.Sprintf("📊 오늘의 주식 시황 (%s)\n\n", now.Format("2006-01-02 15:04"))
}

// formatStockSection renders one interest stock's block: indicator,
// price line, and optional news/summary lines.
func formatStockSection(sb *strings.Builder, info *models.StockInfo, item *models.NewsItem, summary string) {
	sb.WriteString(fmt.Sprintf("\n%s %s (%s)\n", changeEmoji(info.ChangeRate), info.Name, info.Ticker))
	sb.WriteString(fmt.Sprintf("종가: %s (%s)\n", formatPrice(info.Ticker, info.Close), formatChangeRate(info.ChangeRate)))

	if item != nil {
		sb.WriteString(fmt.Sprintf("\n📰 뉴스: %s\n", item.Title))
		sb.WriteString(fmt.Sprintf("🔗 링크: %s\n", item.URL))
		sb.WriteString(fmt.Sprintf("💡 요약: %s\n", summary))
	}
}

// formatTopMovers renders the ranked strength section.
func formatTopMovers(sb *strings.Builder, movers []*models.StockInfo) {
	sb.WriteString("\n\n📈 관심 종목 기준 강세 TOP 3\n")
	sb.WriteString(sectionRule + "\n")

	for _, info := range movers {
		sb.WriteString(fmt.Sprintf("🌟 %s (%s): %s\n", info.Name, info.Ticker, formatChangeRate(info.ChangeRate)))
	}
}

// changeEmoji picks the colored indicator by strict sign of the change
// rate: red down, green up, white flat.
func changeEmoji(changeRate float64) string {
	switch {
	case changeRate < 0:
		return "🔴"
	case changeRate > 0:
		return "🟢"
	default:
		return "⚪"
	}
}

// formatChangeRate renders a signed two-decimal percentage.
func formatChangeRate(changeRate float64) string {
	return fmt.Sprintf("%+.2f%%", changeRate)
}

// formatPrice renders a close price in its market's convention:
// domestic codes as a grouped integer with the won suffix, everything
// else as a two-decimal dollar amount.
func formatPrice(ticker string, close float64) string {
	if models.IsDomesticCode(ticker) {
		return groupDigits(int64(close+0.5)) + "원"
	}
	return fmt.Sprintf("$%.2f", close)
}

// groupDigits inserts thousands separators into an integer.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
