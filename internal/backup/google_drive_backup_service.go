package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const rootBackupsFolderName = "hourglass-backup"

// File is one payload to back up, already rendered (exported CSV, progress
// JSON, the workout log).
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

type GoogleDriveBackupService struct {
	service         *drive.Service
	backupsFolderId string
	shareWithEmail  string
}

func NewGoogleDriveBackupService(
	ctx context.Context,
	credentialsJson []byte,
	shareWithEmail string,
) (*GoogleDriveBackupService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	rootFolderQuery := fmt.Sprintf(
		"mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'",
		rootBackupsFolderName,
	)
	rootFolderList, err := driveService.
		Files.List().
		Q(rootFolderQuery).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	backupsFolderId := ""
	switch len(rootFolderList.Files) {
	case 0:
		log.Warnln("root backups folder not found, will recreate")
	case 1:
		rbf := rootFolderList.Files[0]
		log.Debugf("root backups folder found, %s: %s", rbf.Name, rbf.Id)
		backupsFolderId = rbf.Id
	default:
		rbf := rootFolderList.Files[0]
		log.Warnf("attention: found %d root backups folders, will take the first one: %s", len(rootFolderList.Files), rbf.Id)
		backupsFolderId = rbf.Id
	}

	s := &GoogleDriveBackupService{
		service:        driveService,
		shareWithEmail: shareWithEmail,
	}

	if backupsFolderId == "" {
		backupsFolderId, err = s.createRootBackupsFolder()
		if err != nil {
			return nil, fmt.Errorf("failed to create root backups folder: %w", err)
		}
		log.Debugf("new root backups folder created: %s", backupsFolderId)
	}

	s.backupsFolderId = backupsFolderId

	return s, nil
}

// DoBackup stores the given files in a dated subfolder of the backups
// folder, one run never overwrites another.
func (s *GoogleDriveBackupService) DoBackup(baseTime time.Time, files []File) error {
	if len(files) == 0 {
		log.Warnln("nothing to backup, done")
		return nil
	}

	existingBackups, err := s.getBackupFolders()
	if err != nil {
		return err
	}

	runFolderName := fmt.Sprintf("backup-%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year())
	folderCounter := 1
	for {
		nameExists := false
		for _, folder := range existingBackups {
			if folder.Name == runFolderName {
				nameExists = true
				break
			}
		}
		if !nameExists {
			break
		}
		folderCounter++
		runFolderName = fmt.Sprintf("backup-%d-%d-%d_%d", baseTime.Day(), baseTime.Month(), baseTime.Year(), folderCounter)
	}

	runFolderId, err := s.createFolder(runFolderName, s.backupsFolderId)
	if err != nil {
		return fmt.Errorf("failed to create backup run folder: %w", err)
	}
	log.Debugf("backup run folder created: %s [%s]", runFolderName, runFolderId)

	for _, file := range files {
		fileMeta := &drive.File{
			Name:     file.Name,
			MimeType: file.MimeType,
			Parents:  []string{runFolderId},
		}

		backupFile, err := s.service.
			Files.Create(fileMeta).
			Fields("id, parents").
			Media(bytes.NewReader(file.Data)).
			Do()
		if err != nil {
			return fmt.Errorf("%s: failed to create backup file: %w", file.Name, err)
		}

		log.Debugf("backup file [%s] saved: %s", file.Name, backupFile.Id)
	}

	log.Debugf("backup run %s done, %d files saved", runFolderName, len(files))

	return nil
}

func (s *GoogleDriveBackupService) createRootBackupsFolder() (string, error) {
	folderId, err := s.createFolder(rootBackupsFolderName, "")
	if err != nil {
		return "", err
	}

	if s.shareWithEmail != "" {
		if pId, err := s.updateFilePermission(folderId); err != nil {
			return folderId, fmt.Errorf("failed to create additional permission for root backup folder: %s", err)
		} else {
			log.Debugf("permission %s created for root backup folder %s", pId, folderId)
		}
	}

	return folderId, nil
}

func (s *GoogleDriveBackupService) createFolder(name, parentId string) (string, error) {
	folderMeta := &drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
	}
	if parentId != "" {
		folderMeta.Parents = []string{parentId}
	}

	folderRes, err := s.service.
		Files.Create(folderMeta).
		Fields("id").
		Do()
	if err != nil {
		return "", err
	}
	return folderRes.Id, nil
}

func (s *GoogleDriveBackupService) updateFilePermission(fileId string) (string, error) {
	permission := &drive.Permission{
		EmailAddress: s.shareWithEmail,
		Type:         "user",
		Role:         "reader",
	}

	createdPermission, err := s.service.Permissions.
		Create(fileId, permission).
		Do()
	if err != nil {
		return "", err
	}

	return createdPermission.Id, nil
}

func (s *GoogleDriveBackupService) getBackupFolders() ([]*drive.File, error) {
	query := fmt.Sprintf(
		"'%s' in parents and mimeType = 'application/vnd.google-apps.folder' and trashed = false",
		s.backupsFolderId,
	)
	backups, err := s.service.
		Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		Do()
	if err != nil {
		return nil, err
	}

	return backups.Files, nil
}
