package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/entity"
	errs "github.com/amirhossein-jamali/atm-simulator/internal/domain/error"
	coreport "github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/usecase"
)

// ATM drives the session controller from line-oriented text input
type ATM struct {
	service  usecase.ATMUseCase
	in       *bufio.Scanner
	out      io.Writer
	currency string
	logger   coreport.Logger
}

// NewATM creates a console reading from in and writing to out
func NewATM(service usecase.ATMUseCase, in io.Reader, out io.Writer, currencySymbol string, logger coreport.Logger) *ATM {
	return &ATM{
		service:  service,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currencySymbol,
		logger:   logger,
	}
}

// Run shows the main menu until Exit, end of input or ctx cancellation
func (a *ATM) Run(ctx context.Context) error {
	defer a.logger.Info("Console session ended", nil)

	for ctx.Err() == nil {
		a.println("\nMain Menu")
		a.println("1. Login")
		a.println("2. Create New Account")
		a.println("3. Exit")

		option, ok := a.prompt("Choose (1-3): ")
		if !ok {
			break
		}

		switch option {
		case "1":
			if a.login(ctx) {
				if !a.session(ctx) {
					a.service.Logout()
					return a.in.Err()
				}
			}
		case "2":
			a.createAccount(ctx)
		case "3":
			a.println(msgGoodbye)
			return nil
		default:
			a.println(msgInvalidOption)
		}
	}

	return a.in.Err()
}

func (a *ATM) createAccount(ctx context.Context) {
	accountNumber, ok := a.prompt("Enter NEW Account Number: ")
	if !ok {
		return
	}
	if accountNumber == "" {
		a.println(msgAccountRequired)
		return
	}
	if a.service.HasAccount(accountNumber) {
		a.println(msgAccountExists)
		return
	}

	pin, ok := a.prompt("Set a 4-digit PIN: ")
	if !ok {
		return
	}

	if err := a.service.CreateAccount(ctx, accountNumber, pin); err != nil {
		a.println(createFailureMessage(err))
		return
	}
	a.printf(msgAccountCreated+"\n", a.currency)
}

func (a *ATM) login(ctx context.Context) bool {
	accountNumber, ok := a.prompt("Enter Account Number: ")
	if !ok {
		return false
	}
	pin, ok := a.prompt("Enter PIN: ")
	if !ok {
		return false
	}

	if err := a.service.Authenticate(ctx, accountNumber, pin); err != nil {
		a.println(msgLoginFailed)
		return false
	}
	a.println(msgLoginSuccessful)
	return true
}

// session runs the logged-in menu. It returns false when input ended.
func (a *ATM) session(ctx context.Context) bool {
	for ctx.Err() == nil {
		current, err := a.service.Current()
		if err != nil {
			return true
		}

		a.println("1. Balance Inquiry")
		a.println("2. Cash Withdrawal")
		a.println("3. Cash Deposit")
		a.println("4. Transaction History (session)")
		a.println("5. Change PIN")
		a.println("6. Logout")

		choice, ok := a.prompt("Enter choice: ")
		if !ok {
			return false
		}

		switch choice {
		case "1":
			a.printf(msgBalance+"\n", a.currency, entity.FormatAmount(current.Inquire()))
		case "2":
			a.withdraw(ctx, current)
		case "3":
			a.deposit(ctx, current)
		case "4":
			a.history(current)
		case "5":
			a.changePIN(ctx, current)
		case "6":
			a.service.Logout()
			return true
		default:
			a.println(msgInvalidChoice)
		}
	}
	return true
}

func (a *ATM) withdraw(ctx context.Context, current usecase.AccountLedger) {
	amount, ok := a.promptAmount("Enter withdrawal amount: ")
	if !ok {
		return
	}
	if err := current.Withdraw(ctx, amount); err != nil {
		a.println(amountFailureMessage(err))
		return
	}
	a.println(msgWithdrawOK)
}

func (a *ATM) deposit(ctx context.Context, current usecase.AccountLedger) {
	amount, ok := a.promptAmount("Enter deposit amount: ")
	if !ok {
		return
	}
	if err := current.Deposit(ctx, amount); err != nil {
		a.println(amountFailureMessage(err))
		return
	}
	a.println(msgDepositOK)
}

func (a *ATM) history(current usecase.AccountLedger) {
	records := current.History()
	if len(records) == 0 {
		a.println(msgNoTransactions)
		return
	}
	for _, record := range records {
		a.println(record.Format(a.currency))
	}
}

func (a *ATM) changePIN(ctx context.Context, current usecase.AccountLedger) {
	oldPIN, ok := a.prompt("Enter current PIN: ")
	if !ok {
		return
	}
	newPIN, ok := a.prompt("Enter new PIN (min 4 digits): ")
	if !ok {
		return
	}

	if err := current.ChangePIN(ctx, oldPIN, newPIN); err != nil {
		a.println(changePINFailureMessage(err))
		return
	}
	a.println(msgPINChanged)
}

// promptAmount reads a decimal amount with at most two fraction digits
func (a *ATM) promptAmount(label string) (int64, bool) {
	text, ok := a.prompt(label + a.currency)
	if !ok {
		return 0, false
	}
	amount, err := entity.ParseAmount(text)
	if err != nil {
		if errors.Is(err, errs.ErrAmountOverflow) {
			a.println(msgAmountTooLarge)
		} else {
			a.println(msgInvalidAmount)
		}
		return 0, false
	}
	return amount, true
}

// prompt prints label and returns the next trimmed line; false at end of input
func (a *ATM) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *ATM) println(line string) {
	fmt.Fprintln(a.out, line)
}

func (a *ATM) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
