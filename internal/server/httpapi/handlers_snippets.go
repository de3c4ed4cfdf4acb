package httpapi

import (
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) listSnippets(c *fiber.Ctx) error {
	items, err := s.snippets.List(c.UserContext(), identity(c).UserID)
	if err != nil {
		return err
	}

	out := make([]snippetResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toSnippetResponse(item))
	}
	return c.JSON(out)
}

func (s *Server) createSnippet(c *fiber.Ctx) error {
	var req createSnippetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Cannot parse JSON", err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return badRequest("Invalid input", err)
	}

	snippet, err := s.snippets.Create(c.UserContext(), identity(c).UserID, req.Title, req.Language, req.Code)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSnippetResponse(snippet))
}

func (s *Server) updateSnippet(c *fiber.Ctx) error {
	var req updateSnippetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest("Cannot parse JSON", err)
		}
	}

	patch := models.SnippetPatch{Title: req.Title, Language: req.Language, Code: req.Code}
	snippet, err := s.snippets.Update(c.UserContext(), c.Params("id"), identity(c).UserID, patch)
	if err != nil {
		return err
	}
	return c.JSON(toSnippetResponse(snippet))
}

func (s *Server) deleteSnippet(c *fiber.Ctx) error {
	if err := s.snippets.Delete(c.UserContext(), c.Params("id"), identity(c).UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
