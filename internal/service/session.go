package service

import (
	"context"
	"fmt"
	"lexchange/conf"
	"lexchange/internal/consts"
	"lexchange/internal/ledger"
	"lexchange/internal/model"
	"lexchange/internal/notify"
	"lexchange/internal/session"
	"lexchange/pkg/errors"
	"lexchange/pkg/errors/ecode"
	"lexchange/pkg/jwt"
	"lexchange/pkg/logger"
	"strings"
	"time"
)

type SessionService interface {
	Login(ctx context.Context) (res model.LoginRes, err error)
	Register(ctx context.Context, req model.RegisterReq) (res model.LoginRes, err error)
	Logout(ctx context.Context, tokenstr string) error
	AccountGet(ctx context.Context) (res model.AccountGetRes, err error)
	WatchlistToggle(ctx context.Context, symbol string) (res model.WatchlistToggleRes, err error)
	TradeExecute(ctx context.Context, req model.TradeReq) (res model.TradeRes, err error)
}

// sessionService 实现SessionService接口
type sessionService struct {
	mgr      *session.Manager
	notifier notify.Notifier
	latency  time.Duration
}

func NewSessionService(mgr *session.Manager, notifier notify.Notifier, trade conf.TradeConfig) *sessionService {
	return &sessionService{
		mgr:      mgr,
		notifier: notifier,
		latency:  time.Duration(trade.SimulatedLatency) * time.Millisecond,
	}
}

func (s *sessionService) Login(ctx context.Context) (res model.LoginRes, err error) {
	acct, isNew, err := s.mgr.Login(ctx)
	if err != nil {
		logger.Errorf("登录失败:%v", err)
		return res, errors.Wrap(err, ecode.UserLoginErr, "login failed")
	}

	token, err := s.issueToken(acct)
	if err != nil {
		return res, err
	}

	res.Token = token
	res.Timeout = int(conf.AppConfig.Jwt.JwtTtl)
	res.IsNew = isNew
	res.Account = acct
	if isNew {
		s.notifier.Notify(fmt.Sprintf("Welcome, %s! A demo account has been created for you.", acct.Username), consts.SeveritySuccess)
	} else {
		s.notifier.Notify(fmt.Sprintf("Welcome back, %s!", acct.Username), consts.SeveritySuccess)
	}
	return res, nil
}

func (s *sessionService) Register(ctx context.Context, req model.RegisterReq) (res model.LoginRes, err error) {
	acct, err := s.mgr.Register(ctx, req.Username)
	if err != nil {
		return res, s.mapLedgerErr(err, "register failed")
	}

	token, err := s.issueToken(acct)
	if err != nil {
		return res, err
	}

	res.Token = token
	res.Timeout = int(conf.AppConfig.Jwt.JwtTtl)
	res.IsNew = true
	res.Account = acct
	s.notifier.Notify(fmt.Sprintf("Account %s created with a %.0f USDT welcome bonus.", acct.Username, acct.Balance), consts.SeveritySuccess)
	return res, nil
}

func (s *sessionService) Logout(ctx context.Context, tokenstr string) error {
	if err := s.mgr.Logout(ctx); err != nil {
		return errors.Wrap(err, ecode.Unknown, "logout failed")
	}
	// 令牌进黑名单，redis不可用时静默降级
	if tokenstr != "" {
		if err := jwt.JoinBlackList(ctx, tokenstr, conf.AppConfig.Jwt.Secret); err != nil {
			logger.Warnf("加入token黑名单失败:%v", err)
		}
	}
	s.notifier.Notify("You have been logged out.", consts.SeverityInfo)
	return nil
}

func (s *sessionService) AccountGet(ctx context.Context) (res model.AccountGetRes, err error) {
	acct, _, ok := s.mgr.Snapshot()
	if !ok {
		return res, errors.WithCode(ecode.NotAuthenticated, "not authenticated")
	}
	res.Account = acct
	return res, nil
}

func (s *sessionService) WatchlistToggle(ctx context.Context, symbol string) (res model.WatchlistToggleRes, err error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return res, errors.WithCode(ecode.InvalidInput, "symbol is required")
	}

	acct, version, ok := s.mgr.Snapshot()
	if !ok {
		return res, errors.WithCode(ecode.NotAuthenticated, "not authenticated")
	}

	next, added := ledger.ToggleWatchlist(acct, symbol)
	if err = s.mgr.Commit(ctx, next, version); err != nil {
		return res, s.mapLedgerErr(err, "watchlist update failed")
	}

	res.Watchlist = next.Watchlist
	res.Added = added
	return res, nil
}

func (s *sessionService) TradeExecute(ctx context.Context, req model.TradeReq) (res model.TradeRes, err error) {
	acct, version, ok := s.mgr.Snapshot()
	if !ok {
		return res, errors.WithCode(ecode.NotAuthenticated, "not authenticated")
	}

	// 符号统一小写，和watchlist、机器人的约定一致，
	// 避免"BTC"和"btc"落到两个不同的持仓条目
	inputSymbol := strings.ToLower(strings.TrimSpace(req.InputSymbol))
	outputSymbol := strings.ToLower(strings.TrimSpace(req.OutputSymbol))

	// 模拟撮合延迟
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return res, errors.Wrap(ctx.Err(), ecode.Unknown, "trade cancelled")
		}
	}

	side := consts.TradeSide(strings.ToLower(req.Side))
	next, receipt, err := ledger.ExecuteTrade(acct, side.IsBuy(), inputSymbol, outputSymbol, req.AmountIn, req.AmountOut)
	if err != nil {
		s.notifyTradeErr(err)
		return res, s.mapLedgerErr(err, "trade rejected")
	}

	if err = s.mgr.Commit(ctx, next, version); err != nil {
		return res, s.mapLedgerErr(err, "trade commit failed")
	}

	res.Receipt = receipt
	res.Account = next
	if side.IsBuy() {
		s.notifier.Notify(fmt.Sprintf("Bought %g %s for %g %s. Tx: %s",
			req.AmountOut, strings.ToUpper(req.OutputSymbol), req.AmountIn, strings.ToUpper(req.InputSymbol), receipt), consts.SeveritySuccess)
	} else {
		s.notifier.Notify(fmt.Sprintf("Sold %g %s for %g %s. Tx: %s",
			req.AmountIn, strings.ToUpper(req.InputSymbol), req.AmountOut, strings.ToUpper(req.OutputSymbol), receipt), consts.SeveritySuccess)
	}
	return res, nil
}

func (s *sessionService) issueToken(acct model.Account) (string, error) {
	expireAt := time.Now().Add(time.Duration(conf.AppConfig.Jwt.JwtTtl) * time.Second)
	claims := jwt.BuildClaims(expireAt, acct.Address, acct.Username)
	token, err := jwt.GenToken(claims, conf.AppConfig.Jwt.Secret)
	if err != nil {
		logger.Errorf("生成token失败:%v", err)
		return "", errors.Wrap(err, ecode.Unknown, "token generation failed")
	}
	return token, nil
}

func (s *sessionService) notifyTradeErr(err error) {
	switch {
	case errors.Is(err, ledger.ErrInsufficientBalance):
		s.notifier.Notify("Trade failed: insufficient balance.", consts.SeverityError)
	case errors.Is(err, ledger.ErrInsufficientAsset):
		s.notifier.Notify("Trade failed: insufficient asset holdings.", consts.SeverityError)
	case errors.Is(err, ledger.ErrInvalidInput):
		s.notifier.Notify("Trade failed: invalid amounts.", consts.SeverityError)
	}
}

// mapLedgerErr 把账本哨兵错误映射到业务错误码
func (s *sessionService) mapLedgerErr(err error, msg string) error {
	switch {
	case errors.Is(err, ledger.ErrNotAuthenticated):
		return errors.Wrap(err, ecode.NotAuthenticated, msg)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return errors.Wrap(err, ecode.InsufficientBalance, msg)
	case errors.Is(err, ledger.ErrInsufficientAsset):
		return errors.Wrap(err, ecode.InsufficientAsset, msg)
	case errors.Is(err, ledger.ErrInvalidInput):
		return errors.Wrap(err, ecode.InvalidInput, msg)
	case errors.Is(err, session.ErrVersionConflict):
		return errors.Wrap(err, ecode.StoreConflict, msg)
	default:
		return errors.Wrap(err, ecode.Unknown, msg)
	}
}
