package pdfxlsx

import (
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// pdfiumDocument is a pdfium-backed Document handle.
type pdfiumDocument struct {
	instance  pdfium.Pdfium
	ref       references.FPDF_DOCUMENT
	pageCount int
}

func (d *pdfiumDocument) PageCount() int { return d.pageCount }

func (d *pdfiumDocument) Close() error {
	_, err := d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: d.ref,
	})
	return err
}

// pdfiumOpener opens documents through a shared pdfium instance.
type pdfiumOpener struct {
	instance pdfium.Pdfium
}

func (o *pdfiumOpener) Open(path string) (Document, error) {
	doc, err := o.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &path,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableDocument, "%s: %v", path, err)
	}

	pageCount, err := o.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		o.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
			Document: doc.Document,
		})
		return nil, errors.Wrapf(ErrUnreadableDocument, "%s: %v", path, err)
	}

	return &pdfiumDocument{
		instance:  o.instance,
		ref:       doc.Document,
		pageCount: pageCount.PageCount,
	}, nil
}

// asPdfiumDocument unwraps a Document produced by pdfiumOpener. The
// pdfium-backed capabilities only operate on their own handles.
func asPdfiumDocument(doc Document) (*pdfiumDocument, error) {
	d, ok := doc.(*pdfiumDocument)
	if !ok {
		return nil, errors.Errorf("document handle %T is not pdfium-backed", doc)
	}
	return d, nil
}
