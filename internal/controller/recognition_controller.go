package controller

import (
	"io"

	"textrec-be/internal/dto"
	"textrec-be/internal/pkg/serverutils"
	"textrec-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecognitionController interface {
	RegisterRoutes(r fiber.Router)
	Recognize(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type recognitionController struct {
	recognitionService service.IRecognitionService
	assistantService   service.IAssistantService
}

func NewRecognitionController(
	recognitionService service.IRecognitionService,
	assistantService service.IAssistantService,
) IRecognitionController {
	return &recognitionController{
		recognitionService: recognitionService,
		assistantService:   assistantService,
	}
}

func (c *recognitionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recognition/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Recognize)
	h.Get(":key", c.Show)
	h.Post(":key/ask", c.Ask)
}

// Recognize accepts either a multipart "file" upload or an
// "image_url" form field.
func (c *recognitionController) Recognize(ctx *fiber.Ctx) error {
	userId, _ := ctx.Locals("user_id").(string)

	req := dto.RecognizeRequest{
		ImageURL: ctx.FormValue("image_url"),
	}

	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return serverutils.NewInvalidInput("Unreadable upload")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return serverutils.NewInvalidInput("Unreadable upload")
		}
		req.Image = data
	}

	res, err := c.recognitionService.Recognize(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success recognize image", res))
}

func (c *recognitionController) Show(ctx *fiber.Ctx) error {
	key := ctx.Params("key")

	res, err := c.recognitionService.Show(ctx.Context(), key)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *recognitionController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Key = ctx.Params("key")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}
