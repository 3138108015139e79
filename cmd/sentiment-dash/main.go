package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/SrivP/stock-sentiment-analysis/internal/api"
	"github.com/SrivP/stock-sentiment-analysis/internal/config"
	"github.com/SrivP/stock-sentiment-analysis/internal/dashboard"
	"github.com/SrivP/stock-sentiment-analysis/internal/util"
)

// Styles.
var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	symbolStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).MarginRight(1)
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	neutralStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	buttonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")).Padding(0, 1)
	buttonHlStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1)
	inputFrameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// Focus targets for tab cycling.
const (
	focusInput = iota
	focusButton
)

// Messages.
type compareLoadedMsg struct {
	seq    int
	symbol string
	data   *api.StockComparison
	err    error
}

type forecastLoadedMsg struct {
	seq    int
	symbol string
	data   *api.StockForecast
	err    error
}

// fetchCompare issues one comparison request. The message carries the
// sequence of the request that produced it; only the latest wins.
func fetchCompare(client *api.Client, seq int, symbol string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.Compare(context.Background(), symbol)
		return compareLoadedMsg{seq: seq, symbol: symbol, data: data, err: err}
	}
}

func fetchForecast(client *api.Client, seq int, symbol string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.Predict(context.Background(), symbol)
		return forecastLoadedMsg{seq: seq, symbol: symbol, data: data, err: err}
	}
}

// Model.
type model struct {
	client *api.Client
	logger *slog.Logger

	// View state.
	symbol      string // currently displayed symbol
	pending     string // symbol of the in-flight fetch
	input       textinput.Model
	loading     bool
	errMsg      string
	data        *api.StockComparison // last good payload, retained across failed refetches
	bars        []api.DailyBar       // data.Historical, with the forecast merged when shown
	lastUpdated time.Time

	// Forecast overlay.
	forecasts    map[string]*api.StockForecast // per-symbol cache for the session
	showForecast bool
	fcLoading    bool
	fcErr        string

	// Every compare fetch is tagged with fetchSeq at issue time so a
	// slower stale response can never overwrite a newer symbol's data.
	fetchSeq int
	fcSeq    int

	focus         int
	spin          spinner.Model
	viewport      viewport.Model
	ready         bool
	width, height int
	chartHeight   int
}

func initialModel(client *api.Client, defaultSymbol string, chartHeight int, logger *slog.Logger) model {
	ti := textinput.New()
	ti.Placeholder = defaultSymbol
	ti.CharLimit = 10
	ti.Width = 12
	ti.Prompt = ""
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return model{
		client:      client,
		logger:      logger,
		symbol:      defaultSymbol,
		pending:     defaultSymbol,
		input:       ti,
		loading:     true,
		fetchSeq:    1,
		forecasts:   make(map[string]*api.StockForecast),
		spin:        sp,
		chartHeight: chartHeight,
	}
}

func (m model) Init() tea.Cmd {
	m.logger.Info("fetch started", "symbol", m.symbol, "seq", m.fetchSeq)
	return tea.Batch(textinput.Blink, m.spin.Tick, fetchCompare(m.client, m.fetchSeq, m.symbol))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			if m.loading {
				return m, nil
			}
			if m.focus == focusInput {
				m.focus = focusButton
				m.input.Blur()
			} else {
				m.focus = focusInput
				cmd = m.input.Focus()
			}
			return m, cmd
		case "enter":
			if m.loading {
				return m, nil
			}
			cmd = m.commitSearch()
			if cmd != nil && m.ready {
				m.viewport.SetContent(m.renderContent())
			}
			return m, cmd
		case "ctrl+f":
			return m.toggleForecast()
		case "up", "down", "pgup", "pgdown":
			if m.ready {
				m.viewport, cmd = m.viewport.Update(msg)
			}
			return m, cmd
		}

		// Remaining keys edit the search field while it has focus; the
		// field is frozen while a fetch is outstanding.
		if m.input.Focused() && !m.loading {
			if msg.Type == tea.KeyRunes {
				for i, r := range msg.Runes {
					msg.Runes[i] = unicode.ToUpper(r)
				}
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.ready {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 1
		searchH := 1
		footerH := 1
		vpHeight := m.height - headerH - searchH - footerH
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case compareLoadedMsg:
		if msg.seq != m.fetchSeq {
			m.logger.Debug("stale response discarded", "symbol", msg.symbol, "seq", msg.seq, "latest", m.fetchSeq)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.logger.Error("fetch failed", "symbol", msg.symbol, "error", msg.err)
		} else {
			m.data = msg.data
			m.symbol = msg.symbol
			m.errMsg = ""
			m.lastUpdated = time.Now()
			m.rebuildBars()
			m.logger.Info("fetch complete", "symbol", msg.symbol, "bars", len(m.bars))
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
			m.viewport.GotoTop()
		}
		return m, nil

	case forecastLoadedMsg:
		if msg.seq != m.fcSeq {
			m.logger.Debug("stale forecast discarded", "symbol", msg.symbol, "seq", msg.seq, "latest", m.fcSeq)
			return m, nil
		}
		m.fcLoading = false
		if msg.err != nil {
			m.fcErr = msg.err.Error()
			m.logger.Warn("forecast failed", "symbol", msg.symbol, "error", msg.err)
		} else {
			m.forecasts[msg.symbol] = msg.data
			m.logger.Info("forecast loaded", "symbol", msg.symbol, "days", len(msg.data.PredictedNext7Days))
			if msg.symbol == m.symbol {
				m.rebuildBars()
			}
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.fcLoading {
			return m, nil
		}
		m.spin, cmd = m.spin.Update(msg)
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, cmd
	}

	// Cursor blink and mouse events go to the components that own them.
	var cmds []tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// commitSearch starts a fetch for the trimmed input. Empty or
// whitespace-only input issues no request.
func (m *model) commitSearch() tea.Cmd {
	sym := strings.ToUpper(strings.TrimSpace(m.input.Value()))
	if sym == "" {
		return nil
	}
	return m.startFetch(sym)
}

func (m *model) startFetch(symbol string) tea.Cmd {
	// A new search supersedes both in-flight requests.
	m.fetchSeq++
	m.fcSeq++
	m.pending = symbol
	m.loading = true
	m.errMsg = ""
	m.showForecast = false
	m.fcLoading = false
	m.fcErr = ""
	m.logger.Info("fetch started", "symbol", symbol, "seq", m.fetchSeq)
	return tea.Batch(m.spin.Tick, fetchCompare(m.client, m.fetchSeq, symbol))
}

// toggleForecast shows or hides the predicted series, fetching it once
// per symbol per session. It never piggybacks on a compare fetch.
func (m model) toggleForecast() (tea.Model, tea.Cmd) {
	if m.loading || m.data == nil {
		return m, nil
	}
	if m.showForecast {
		m.showForecast = false
		m.fcErr = ""
		m.rebuildBars()
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	m.showForecast = true
	m.fcErr = ""
	if m.forecasts[m.symbol] != nil {
		m.rebuildBars()
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	m.fcSeq++
	m.fcLoading = true
	m.logger.Info("forecast fetch started", "symbol", m.symbol, "seq", m.fcSeq)
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
	return m, tea.Batch(m.spin.Tick, fetchForecast(m.client, m.fcSeq, m.symbol))
}

// rebuildBars derives the plotted series from the current payload and
// the forecast overlay state.
func (m *model) rebuildBars() {
	if m.data == nil {
		m.bars = nil
		return
	}
	m.bars = m.data.Historical
	if m.showForecast {
		if fc := m.forecasts[m.symbol]; fc != nil {
			m.bars = dashboard.MergeForecast(m.data.Historical, fc)
		}
	}
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	updated := "--:--:--"
	if !m.lastUpdated.IsZero() {
		updated = m.lastUpdated.Format("15:04:05")
	}
	headerText := fmt.Sprintf(" Stock Sentiment  %s    updated: %s ", m.symbol, updated)
	headerBar := headerStyle.Render(padOrTrunc(headerText, m.width))

	searchRow := m.renderSearchRow()

	footerLeft := " esc quit  tab focus  enter search  ctrl+f forecast  up/dn scroll"
	footerRight := fmt.Sprintf("%.0f%% ", m.viewport.ScrollPercent()*100)
	gap := m.width - len(footerLeft) - len(footerRight)
	if gap < 0 {
		gap = 0
	}
	footerBar := footerStyle.Render(padOrTrunc(footerLeft+strings.Repeat(" ", gap)+footerRight, m.width))

	return headerBar + "\n" + searchRow + "\n" + m.viewport.View() + "\n" + footerBar
}

func (m model) renderSearchRow() string {
	label := labelStyle.Render(" Symbol: ")
	field := inputFrameStyle.Render("[") + m.input.View() + inputFrameStyle.Render("]")

	button := buttonStyle.Render("[ Search ]")
	if m.focus == focusButton {
		button = buttonHlStyle.Render("[ Search ]")
	}
	if m.loading {
		field = dimStyle.Render("[" + m.input.Value() + "]")
		button = dimStyle.Render("[ Search ]")
	}

	return label + field + " " + button
}

func (m model) renderContent() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.loading {
		b.WriteString("  " + m.spin.View() + " Fetching " + symbolStyle.Render(m.pending) + " ...\n")
		return b.String()
	}

	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
		if m.data == nil {
			b.WriteString("\n" + dimStyle.Render("  edit the symbol and press enter to retry") + "\n")
			return b.String()
		}
		b.WriteString(dimStyle.Render("  showing last fetched data") + "\n\n")
	}

	if m.data == nil {
		b.WriteString(dimStyle.Render("  no data") + "\n")
		return b.String()
	}

	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderChartBlock())
	return b.String()
}

// renderCards lays the five cards out horizontally, wrapping to a new
// row when the terminal is too narrow for the remainder.
func (m model) renderCards() string {
	var (
		rows     []string
		row      []string
		rowWidth int
	)
	for _, c := range dashboard.BuildCards(m.data) {
		view := renderCard(c)
		w := lipgloss.Width(view)
		if rowWidth > 0 && rowWidth+w > m.width-2 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, view)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(rows, "\n")) + "\n"
}

func renderCard(c dashboard.Card) string {
	valueStyle := cardValueStyle
	if !c.Up {
		valueStyle = valueStyle.Foreground(lipgloss.Color("9"))
	}
	lines := []string{
		cardTitleStyle.Render(c.Title),
		valueStyle.Render(c.Value),
	}
	if c.Tag != "" {
		tagStyle := neutralStyle
		switch c.Tag {
		case "Positive":
			tagStyle = gainStyle
		case "Negative":
			tagStyle = lossStyle
		}
		lines = append(lines, tagStyle.Render(c.Tag))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) renderChartBlock() string {
	var b strings.Builder

	chartWidth := m.width - 4
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := dashboard.RenderChart(m.bars, m.chartHeight, chartWidth)
	if chart == "" {
		b.WriteString(dimStyle.Render("  no historical data") + "\n")
		return b.String()
	}

	for _, line := range strings.Split(chart, "\n") {
		b.WriteString("  " + line + "\n")
	}

	switch {
	case m.fcLoading && m.showForecast:
		b.WriteString("\n  " + m.spin.View() + dimStyle.Render(" loading forecast ...") + "\n")
	case m.fcErr != "" && m.showForecast:
		b.WriteString("\n  " + lossStyle.Render("forecast unavailable: "+m.fcErr) + "\n")
	case m.showForecast:
		if fc := m.forecasts[m.symbol]; fc != nil {
			note := fmt.Sprintf("forecast: %d days (r2 %s)",
				len(fc.PredictedNext7Days), dashboard.FormatScore(fc.TestR2Score))
			b.WriteString("\n  " + dimStyle.Render(note) + "\n")
		}
	}
	return b.String()
}

// padOrTrunc pads s with spaces to width, or truncates if longer.
func padOrTrunc(s string, width int) string {
	n := len(s)
	if n >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-n)
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	symbol := flag.String("symbol", "", "initial ticker symbol (default from config)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = fmt.Sprintf("/tmp/sentiment-dash-%s.log", time.Now().Format("2006-01-02"))
	}
	logger, logFile, err := util.NewFileLogger(logPath, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	util.SetDefault(logger)

	sym := strings.ToUpper(strings.TrimSpace(*symbol))
	if sym == "" {
		sym = cfg.Dashboard.DefaultSymbol
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), logger)
	logger.Info("starting dashboard", "baseURL", cfg.API.BaseURL, "symbol", sym)

	p := tea.NewProgram(
		initialModel(client, sym, cfg.Dashboard.ChartHeight, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
