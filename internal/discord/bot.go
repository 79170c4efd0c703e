package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/ledger/internal/command"
	"github.com/NgigiN/ledger/internal/config"
	"github.com/NgigiN/ledger/internal/ledger"
	"github.com/NgigiN/ledger/internal/report"
)

const menu = "Welcome to AwesomeGIC Bank! What would you like to do?\n" +
	"[T] Input transactions           `!t <Date> <Account> <Type> <Amount>`\n" +
	"[I] Define interest rules        `!i <Date> <RuleId> <Rate in %>`\n" +
	"[P] Print statement              `!p <Account> <Year><Month>`\n" +
	"[Q] Quit                         `!q`"

const farewell = "Thank you for banking with AwesomeGIC Bank.\nHave a nice day!"

// Service is what the bot needs from the application layer.
type Service interface {
	RecordTransaction(ctx context.Context, account, date string, typ ledger.TxnType, amount decimal.Decimal) (*ledger.Transaction, error)
	AccountTransactions(ctx context.Context, account string) ([]ledger.Transaction, error)
	SetRule(ctx context.Context, date, ruleID string, rate decimal.Decimal) ([]ledger.InterestRule, error)
	Rules(ctx context.Context) ([]ledger.InterestRule, error)
	Statement(ctx context.Context, account string, ym ledger.YearMonth) (*ledger.Statement, error)
}

type Bot struct {
	session   *discordgo.Session
	svc       Service
	channelID string
	logger    zerolog.Logger
}

func NewBot(cfg *config.Config, svc Service, logger zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:   session,
		svc:       svc,
		channelID: cfg.DiscordChannelId,
		logger:    logger.With().Str("component", "discord").Logger(),
	}

	session.AddHandler(bot.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return //bot's messages
	}

	if m.ChannelID != b.channelID {
		return //specific to the channel
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reply := b.respond(ctx, m.Content)
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		b.logger.Error().Err(err).Msg("failed to send reply")
	}
}

// respond maps a message to its reply; non-commands get an empty reply.
func (b *Bot) respond(ctx context.Context, content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "!") {
		return ""
	}
	name, args := content, ""
	if i := strings.IndexFunc(content, unicode.IsSpace); i >= 0 {
		name, args = content[:i], strings.TrimSpace(content[i:])
	}

	switch strings.ToLower(name) {
	case "!help", "!menu":
		return menu
	case "!t", "!txn":
		if strings.Contains(args, "\n") {
			return b.handleBatch(ctx, args)
		}
		return b.handleTransaction(ctx, args)
	case "!i", "!rule":
		if args == "" {
			return b.handleRules(ctx)
		}
		return b.handleRule(ctx, args)
	case "!rules":
		return b.handleRules(ctx)
	case "!p", "!statement":
		return b.handleStatement(ctx, args)
	case "!q", "!quit":
		return farewell
	default:
		return "Unknown command. Type !help for the menu."
	}
}

func (b *Bot) record(ctx context.Context, line string) (*ledger.Transaction, error) {
	in, err := command.ParseTransaction(line)
	if err != nil {
		return nil, err
	}
	return b.svc.RecordTransaction(ctx, in.Account, in.Date, in.Type, in.Amount)
}

func (b *Bot) handleTransaction(ctx context.Context, line string) string {
	txn, err := b.record(ctx, line)
	if err != nil {
		return fmt.Sprintf("Invalid transaction: %v", err)
	}
	history, err := b.svc.AccountTransactions(ctx, txn.Account)
	if err != nil {
		return fmt.Sprintf("Recorded %s but failed to load the account: %v", txn.TxnID, err)
	}
	var sb strings.Builder
	report.Transactions(&sb, txn.Account, history)
	return codeBlock(sb.String())
}

func (b *Bot) handleBatch(ctx context.Context, args string) string {
	var lines []string
	for _, line := range strings.Split(args, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	successCount := 0
	var failures []string
	for i, line := range lines {
		if _, err := b.record(ctx, line); err != nil {
			failures = append(failures, fmt.Sprintf("Transaction %d: %v", i+1, err))
			continue
		}
		successCount++
	}

	response := "**Batch Processing Complete**\n"
	response += fmt.Sprintf("**Successfully processed**: %d transactions\n", successCount)
	if len(failures) > 0 {
		response += fmt.Sprintf("**Failed**: %d transactions\n", len(failures))
		response += "**Errors:**\n"
		for _, err := range failures {
			response += fmt.Sprintf("• %s\n", err)
		}
	}
	return response
}

func (b *Bot) handleRule(ctx context.Context, line string) string {
	in, err := command.ParseRule(line)
	if err != nil {
		return fmt.Sprintf("Invalid interest rule: %v", err)
	}
	rules, err := b.svc.SetRule(ctx, in.Date, in.RuleID, in.Rate)
	if err != nil {
		return fmt.Sprintf("Failed to add interest rule: %v", err)
	}
	var sb strings.Builder
	report.Rules(&sb, rules)
	return fmt.Sprintf("Interest rule %s added successfully!\n%s", in.RuleID, codeBlock(sb.String()))
}

func (b *Bot) handleRules(ctx context.Context) string {
	rules, err := b.svc.Rules(ctx)
	if err != nil {
		return fmt.Sprintf("Failed to get interest rules: %v", err)
	}
	if len(rules) == 0 {
		return "No interest rules defined."
	}
	var sb strings.Builder
	report.Rules(&sb, rules)
	return codeBlock(sb.String())
}

func (b *Bot) handleStatement(ctx context.Context, line string) string {
	in, err := command.ParseStatement(line)
	if err != nil {
		return fmt.Sprintf("Invalid statement request: %v", err)
	}
	st, err := b.svc.Statement(ctx, in.Account, in.Month)
	if errors.Is(err, ledger.ErrNotFound) {
		return strings.TrimPrefix(err.Error(), ledger.ErrNotFound.Error()+": ")
	}
	if err != nil {
		return fmt.Sprintf("Failed to print statement: %v", err)
	}
	var sb strings.Builder
	report.Statement(&sb, st)
	return codeBlock(sb.String())
}

func codeBlock(s string) string {
	return "```\n" + strings.TrimRight(s, "\n") + "\n```"
}
