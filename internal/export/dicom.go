package export

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/healthsurvey/internal/present"
)

const (
	secondaryCaptureSOPClass = "1.2.840.10008.5.1.4.1.1.7"
	explicitVRLittleEndian   = "1.2.840.10008.1.2.1"
	implementationClassUID   = "2.25.1849023648301203954712"
)

// DICOMExporter writes the rendered page as a DICOM Secondary Capture image
// so the report can be archived next to imaging studies.
type DICOMExporter struct {
	Dir string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *DICOMExporter) Export(view present.View, filename string) (string, error) {
	path, err := outputPath(e.Dir, filename, FormatDICOM)
	if err != nil {
		return "", err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	ds := buildSecondaryCapture(view, now())

	if err := writeDatasetToFile(path, ds); err != nil {
		return "", fmt.Errorf("writing dicom: %w", err)
	}
	log.Printf("export: wrote %s", path)
	return path, nil
}

func buildSecondaryCapture(view present.View, at time.Time) dicom.Dataset {
	page := RenderPage(view)
	width, height := page.Rect.Dx(), page.Rect.Dy()

	nativeFrame := frame.NewNativeFrame[uint8](8, height, width, width*height, 1)
	for y := 0; y < height; y++ {
		copy(nativeFrame.RawData[y*width:(y+1)*width], page.Pix[y*page.Stride:y*page.Stride+width])
	}

	sopInstanceUID := newUID()
	date := at.Format("20060102")
	clock := at.Format("150405")

	return dicom.Dataset{Elements: []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
		mustNewElement(tag.MediaStorageSOPClassUID, []string{secondaryCaptureSOPClass}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.ImplementationClassUID, []string{implementationClassUID}),
		mustNewElement(tag.SOPClassUID, []string{secondaryCaptureSOPClass}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.StudyInstanceUID, []string{newUID()}),
		mustNewElement(tag.SeriesInstanceUID, []string{newUID()}),
		mustNewElement(tag.StudyDate, []string{date}),
		mustNewElement(tag.StudyTime, []string{clock}),
		mustNewElement(tag.ContentDate, []string{date}),
		mustNewElement(tag.ContentTime, []string{clock}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.ConversionType, []string{"WSD"}),
		mustNewElement(tag.PatientName, []string{"Anonymous"}),
		mustNewElement(tag.PatientID, []string{"HEALTHSURVEY"}),
		mustNewElement(tag.StudyDescription, []string{view.Title}),
		mustNewElement(tag.SeriesDescription, []string{"Health survey report"}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.ImageComments, []string{view.Text()}),
		mustNewElement(tag.Rows, []int{height}),
		mustNewElement(tag.Columns, []int{width}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   nativeFrame,
				},
			},
		}),
	}}
}

// newUID derives a DICOM UID from a random UUID (2.25 root).
func newUID() string {
	u := uuid.New()
	return "2.25." + new(big.Int).SetBytes(u[:]).String()
}

func writeDatasetToFile(filename string, ds dicom.Dataset, opts ...dicom.WriteOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds, opts...)
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}
