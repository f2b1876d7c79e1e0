package controllers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"counting-app/config"
	"counting-app/inventory"
	"counting-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"
)

type AdminController struct {
	Store *inventory.Store
}

func NewAdminController(store *inventory.Store) *AdminController {
	return &AdminController{Store: store}
}

// Login checks the admin PIN and issues a token carrying the admin
// role. The PIN gate is a coarse access check, not real security.
func (c *AdminController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Pin string `json:"pin" validate:"required,len=4,numeric"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	if !checkPin(input.Pin) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid PIN"})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": uuid.NewString(),
		"role":       "admin",
		"exp":        time.Now().Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
		"jti":        uuid.NewString(),
	})
	tokenString, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to sign token", "error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Admin login successful",
		"data":    fiber.Map{"token": tokenString},
	})
}

func checkPin(pin string) bool {
	if config.AdminPINHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(config.AdminPINHash), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(config.AdminPIN)) == 1
}

// Overview reports dual progress and open discrepancies per group.
func (c *AdminController) Overview(ctx *fiber.Ctx) error {
	type groupSummary struct {
		Group             models.CountingGroup `json:"group"`
		TotalProducts     int                  `json:"total_products"`
		Person1Counted    int                  `json:"person1_counted"`
		Person2Counted    int                  `json:"person2_counted"`
		OpenDiscrepancies int                  `json:"open_discrepancies"`
		ResolvedCount     int                  `json:"resolved_count"`
	}

	var summaries []groupSummary
	for _, g := range c.Store.Groups() {
		report, err := c.Store.GroupReport(g.ID)
		if err != nil {
			continue
		}
		summaries = append(summaries, groupSummary{
			Group:             report.Group,
			TotalProducts:     report.TotalProducts,
			Person1Counted:    report.Person1Counted,
			Person2Counted:    report.Person2Counted,
			OpenDiscrepancies: report.OpenDiscrepancies,
			ResolvedCount:     len(report.Resolved),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"groups": summaries}})
}

// GroupReport returns the full admin reconciliation report for one
// group, including the matched-against-baseline split.
func (c *AdminController) GroupReport(ctx *fiber.Ctx) error {
	report, err := c.Store.GroupReport(ctx.Params("id"))
	if err != nil {
		return writeStoreError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"report": report}})
}

// Resolve records the final quantity for a discrepancy. Both counters
// must have counted the product first.
func (c *AdminController) Resolve(ctx *fiber.Ctx) error {
	var input struct {
		GroupID       string `json:"group_id" validate:"required"`
		ProductID     *int   `json:"product_id" validate:"required"`
		FinalQuantity *int   `json:"final_quantity" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	if err := c.Store.Resolve(input.GroupID, *input.ProductID, *input.FinalQuantity); err != nil {
		return writeStoreError(ctx, err)
	}

	status := c.Store.StatusFor(input.GroupID, models.Counter1, *input.ProductID, inventory.ViewAdmin)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Discrepancy resolved",
		"data":    fiber.Map{"status": status},
	})
}

// ExportExcel streams the reconciliation report of every group as an
// xlsx workbook.
func (c *AdminController) ExportExcel(ctx *fiber.Ctx) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Group", "SAP Code", "Product Name", "Expected Qty", "Person 1", "Person 2", "Status", "Final Qty"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, g := range c.Store.Groups() {
		report, err := c.Store.GroupReport(g.ID)
		if err != nil {
			continue
		}

		partitions := [][]inventory.ProductComparison{
			report.Discrepant,
			report.MatchedBaseline,
			report.MatchedOffBaseline,
			report.Resolved,
			report.Unready,
		}
		for _, partition := range partitions {
			for _, pc := range partition {
				f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.Name)
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pc.Product.SapCode)
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), pc.Product.Name)
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), pc.Product.ExpectedQty)
				if pc.Person1Qty != nil {
					f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *pc.Person1Qty)
				}
				if pc.Person2Qty != nil {
					f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *pc.Person2Qty)
				}
				f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(pc.Status))
				if pc.FinalQuantity != nil {
					f.SetCellValue(sheet, fmt.Sprintf("H%d", row), *pc.FinalQuantity)
				}
				row++
			}
		}
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="reconciliation.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel report")
	}

	return nil
}

// Notify emails the reconciliation summary to the given recipients.
func (c *AdminController) Notify(ctx *fiber.Ctx) error {
	var input struct {
		Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	if config.SMTPHost == "" {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "SMTP is not configured"})
	}

	var lines []string
	for _, g := range c.Store.Groups() {
		report, err := c.Store.GroupReport(g.ID)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"<li><strong>%s</strong>: %d/%d and %d/%d counted, %d open discrepancies, %d resolved</li>",
			report.Group.Name,
			report.Person1Counted, report.TotalProducts,
			report.Person2Counted, report.TotalProducts,
			report.OpenDiscrepancies, len(report.Resolved)))
	}

	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Inventory reconciliation summary</h3>
				<ul>%s</ul>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, strings.Join(lines, "\n"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", input.Recipients...)
	msg.SetHeader("Subject", "Inventory reconciliation summary")
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to send email", "error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Summary sent"})
}
